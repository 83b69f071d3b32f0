package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories/mocks"
)

func newTranslationFixture(t *testing.T, config TranslationConfig) (*mocks.MockTranslator, *TranslationService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	translator := mocks.NewMockTranslator(ctrl)
	return translator, NewTranslationService(translator, config, nil, zaptest.NewLogger(t))
}

func TestTranslationService_SingleChunk(t *testing.T) {
	translator, service := newTranslationFixture(t, TranslationConfig{})
	translator.EXPECT().Translate(gomock.Any(), "namaste", "hi", "en").
		Return(repositories.TranslationResult{Text: "hello", DetectedSourceCode: "hi"}, nil)

	out, err := service.Translate(context.Background(), TranslationRequest{
		Text:           "namaste",
		SourceLanguage: "hindi",
		TargetLanguage: "english",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if out.TranslatedText != "hello" {
		t.Errorf("Expected 'hello', got %q", out.TranslatedText)
	}
	if out.SourceLanguage != "Hindi" || out.TargetLanguage != "English" {
		t.Errorf("Expected Hindi -> English, got %s -> %s", out.SourceLanguage, out.TargetLanguage)
	}
	if out.OriginalText != "namaste" {
		t.Errorf("Expected original text echoed, got %q", out.OriginalText)
	}
}

func TestTranslationService_LabelFallbacks(t *testing.T) {
	translator, service := newTranslationFixture(t, TranslationConfig{})
	translator.EXPECT().Translate(gomock.Any(), "bonjour", "auto", "en").
		Return(repositories.TranslationResult{Text: "hello", DetectedSourceCode: "fr"}, nil)

	out, err := service.Translate(context.Background(), TranslationRequest{
		Text:           "bonjour",
		SourceLanguage: "french",
		TargetLanguage: "martian",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.SourceLanguage != "fr" {
		t.Errorf("Expected unknown detected code shown raw, got %q", out.SourceLanguage)
	}
	if out.TargetLanguage != "English" {
		t.Errorf("Expected English target, got %q", out.TargetLanguage)
	}
}

func TestTranslationService_SevenThousandChars(t *testing.T) {
	translator, service := newTranslationFixture(t, TranslationConfig{})

	text := strings.TrimSpace(strings.Repeat("Ee vaakyam oru pareekshanamaanu. ", 7000/33+1))
	var sent []string
	detected := []string{"ml", "ml", "ta"}
	translator.EXPECT().Translate(gomock.Any(), gomock.Any(), "auto", "en").
		DoAndReturn(func(ctx context.Context, chunk, source, target string) (repositories.TranslationResult, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("Expected a per-call deadline")
			}
			i := len(sent)
			sent = append(sent, chunk)
			return repositories.TranslationResult{Text: "part", DetectedSourceCode: detected[min(i, len(detected)-1)]}, nil
		}).
		MinTimes(3)

	out, err := service.Translate(context.Background(), TranslationRequest{Text: text, TargetLanguage: "english"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for i, chunk := range sent {
		if len([]rune(chunk)) > 3000 {
			t.Errorf("Chunk %d exceeds 3000 chars", i)
		}
	}
	if out.Chunks != len(sent) {
		t.Errorf("Expected %d chunks, got %d", len(sent), out.Chunks)
	}
	if out.TranslatedText != strings.TrimSpace(strings.Repeat("part ", len(sent))) {
		t.Errorf("Expected parts joined with spaces, got %q", out.TranslatedText)
	}
	if out.SourceLanguage != "Tamil" {
		t.Errorf("Expected last chunk's detected language, got %q", out.SourceLanguage)
	}
	if out.OriginalText != text {
		t.Error("Expected the full original text")
	}
}

func TestTranslationService_EmptyInput(t *testing.T) {
	_, service := newTranslationFixture(t, TranslationConfig{})

	for _, text := range []string{"", "   \n\t"} {
		_, err := service.Translate(context.Background(), TranslationRequest{Text: text})
		if !errors.Is(err, domain.ErrEmptyInput) {
			t.Errorf("Expected ErrEmptyInput for %q, got %v", text, err)
		}
	}
}

func TestTranslationService_RemoteFailure(t *testing.T) {
	translator, service := newTranslationFixture(t, TranslationConfig{MaxChars: 10})
	gomock.InOrder(
		translator.EXPECT().Translate(gomock.Any(), "aaaa bbbb", "auto", "en").
			Return(repositories.TranslationResult{Text: "x"}, nil),
		translator.EXPECT().Translate(gomock.Any(), "cccc", "auto", "en").
			Return(repositories.TranslationResult{}, errors.New("quota exceeded")),
	)

	_, err := service.Translate(context.Background(), TranslationRequest{Text: "aaaa bbbb cccc"})
	if !errors.Is(err, domain.ErrTranslationFailed) {
		t.Fatalf("Expected ErrTranslationFailed, got %v", err)
	}

	var terr *TranslationError
	if !errors.As(err, &terr) {
		t.Fatalf("Expected *TranslationError, got %T", err)
	}
	if terr.Chunk != 1 || terr.Err.Error() != "quota exceeded" {
		t.Errorf("Unexpected error detail: chunk %d, %v", terr.Chunk, terr.Err)
	}
}

func TestTranslationService_Timeout(t *testing.T) {
	translator, service := newTranslationFixture(t, TranslationConfig{CallTimeout: 20 * time.Millisecond})
	translator.EXPECT().Translate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, text, source, target string) (repositories.TranslationResult, error) {
			<-ctx.Done()
			return repositories.TranslationResult{}, ctx.Err()
		})

	_, err := service.Translate(context.Background(), TranslationRequest{Text: "slow"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if !errors.Is(err, domain.ErrTranslationFailed) {
		t.Errorf("Expected ErrTranslationFailed, got %v", err)
	}
}
