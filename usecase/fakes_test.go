package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
)

// fakeAudio is a span of silence. Export renders the span so each chunk
// produces distinct bytes that mocks can match on.
type fakeAudio struct {
	start, end time.Duration
	exportErr  error
}

func newFakeAudio(d time.Duration) *fakeAudio {
	return &fakeAudio{end: d}
}

func (a *fakeAudio) Duration() time.Duration { return a.end - a.start }

func (a *fakeAudio) Slice(start, end time.Duration) entities.Audio {
	d := a.Duration()
	start = max(0, min(start, d))
	end = max(start, min(end, d))
	return &fakeAudio{start: a.start + start, end: a.start + end, exportErr: a.exportErr}
}

func (a *fakeAudio) Export(format string) ([]byte, error) {
	if a.exportErr != nil {
		return nil, a.exportErr
	}
	if format != "wav" {
		return nil, errors.New("unsupported format " + format)
	}
	return wavFor(a.start, a.end), nil
}

func wavFor(start, end time.Duration) []byte {
	return []byte(fmt.Sprintf("wav[%s-%s]", start, end))
}
