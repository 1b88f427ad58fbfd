package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nexphase/nexcareer/pkg/resume"
	"github.com/nexphase/nexcareer/pkg/result"
)

// PDFParser mocks resume.Parser.
type PDFParser struct {
	mock.Mock
}

var _ resume.Parser = (*PDFParser)(nil)

func (m *PDFParser) ExtractText(ctx context.Context, data []byte) result.Result[resume.Extraction] {
	return m.Called(ctx, data).Get(0).(result.Result[resume.Extraction])
}
