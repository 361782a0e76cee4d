package blob

import (
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/okian/asistencia/internal/domain/model"
)

// StdoutPublisher writes an indented snapshot to a writer. It backs dry runs
// and the verification print.
type StdoutPublisher struct {
	w io.Writer
}

// NewStdoutPublisher returns a publisher that writes to w.
func NewStdoutPublisher(w io.Writer) *StdoutPublisher {
	return &StdoutPublisher{w: w}
}

// Publish writes snap as indented JSON followed by a newline.
func (p *StdoutPublisher) Publish(_ context.Context, snap *model.DailySnapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrEncode)
	}
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if _, err := p.w.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}
	return nil
}
