package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories/mocks"
)

func firstChunk(d time.Duration) entities.AudioChunk {
	return SegmentAudio(newFakeAudio(d), 30*time.Second, 600*time.Second)[0]
}

func TestLanguageProber_FirstMatchWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stt := mocks.NewMockSpeechToText(ctrl)
	wav := wavFor(0, 30*time.Second)
	gomock.InOrder(
		stt.EXPECT().Recognize(gomock.Any(), wav, "en-IN").Return("", domain.ErrUnrecognized),
		stt.EXPECT().Recognize(gomock.Any(), wav, "ml-IN").Return("", nil),
		stt.EXPECT().Recognize(gomock.Any(), wav, "hi-IN").Return("namaste duniya", nil),
	)

	prober := NewLanguageProber(stt, nil, zaptest.NewLogger(t))
	lang, text := prober.Probe(context.Background(), firstChunk(45*time.Second), entities.Candidates())

	if lang != entities.Hindi {
		t.Errorf("Expected Hindi, got %s", lang.DisplayName)
	}
	if text != "namaste duniya" {
		t.Errorf("Expected probe text to be kept, got %q", text)
	}
}

func TestLanguageProber_SwallowsServiceErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stt := mocks.NewMockSpeechToText(ctrl)
	gomock.InOrder(
		stt.EXPECT().Recognize(gomock.Any(), gomock.Any(), "en-IN").Return("", domain.ErrServiceUnavailable),
		stt.EXPECT().Recognize(gomock.Any(), gomock.Any(), "ml-IN").Return("nanni", nil),
	)

	prober := NewLanguageProber(stt, nil, zaptest.NewLogger(t))
	lang, text := prober.Probe(context.Background(), firstChunk(10*time.Second), entities.Candidates())

	if lang != entities.Malayalam || text != "nanni" {
		t.Errorf("Expected Malayalam/nanni, got %s/%q", lang.DisplayName, text)
	}
}

func TestLanguageProber_FallsBackToEnglish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stt := mocks.NewMockSpeechToText(ctrl)
	var calls []*gomock.Call
	for _, c := range entities.Candidates() {
		calls = append(calls, stt.EXPECT().Recognize(gomock.Any(), gomock.Any(), c.RecognitionCode).Return("", errors.New("nothing")))
	}
	gomock.InOrder(calls...)

	prober := NewLanguageProber(stt, nil, zaptest.NewLogger(t))
	lang, text := prober.Probe(context.Background(), firstChunk(10*time.Second), entities.Candidates())

	if lang != entities.English {
		t.Errorf("Expected English fallback, got %s", lang.DisplayName)
	}
	if text != "" {
		t.Errorf("Expected empty text, got %q", text)
	}
}

func TestLanguageProber_ExportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stt := mocks.NewMockSpeechToText(ctrl)

	a := newFakeAudio(10 * time.Second)
	a.exportErr = errors.New("encoder broke")
	chunk := SegmentAudio(a, 30*time.Second, 600*time.Second)[0]

	prober := NewLanguageProber(stt, nil, zaptest.NewLogger(t))
	lang, text := prober.Probe(context.Background(), chunk, entities.Candidates())

	if lang != entities.English || text != "" {
		t.Errorf("Expected English with no text, got %s/%q", lang.DisplayName, text)
	}
}
