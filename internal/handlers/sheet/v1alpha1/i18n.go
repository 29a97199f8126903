package v1alpha1

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"google.golang.org/grpc/metadata"

	"github.com/KirkDiggler/coc-api/internal/errors"
)

// AcceptLanguageKey is the request metadata key selecting the error language
const AcceptLanguageKey = "accept-language"

var supportedLanguages = []language.Tag{language.English, language.Japanese}

var languageMatcher = language.NewMatcher(supportedLanguages)

// errorSummaries holds the per-code summary shown before the error detail
var errorSummaries = map[errors.Code][2]string{
	errors.CodeInvalidArgument:    {"invalid request", "リクエストが不正です"},
	errors.CodeNotFound:           {"not found", "見つかりません"},
	errors.CodeUnknownAbility:     {"unknown ability", "不明な能力値です"},
	errors.CodeInvalidConfig:      {"invalid dice setting", "ダイス設定が不正です"},
	errors.CodeInvalidImport:      {"import rejected", "インポートできません"},
	errors.CodeVersionConflict:    {"sheet was changed by another request", "シートが他の操作で更新されました"},
	errors.CodeCyclicParent:       {"version history is corrupt", "バージョン履歴が壊れています"},
	errors.CodeImageQuotaExceeded: {"image limit reached", "画像の上限に達しました"},
	errors.CodeIOFailure:          {"storage unavailable", "ストレージに接続できません"},
	errors.CodeSyncDisabled:       {"VTT sync is disabled", "VTT連携は無効です"},
	errors.CodeInternal:           {"internal error", "内部エラー"},
}

// newErrorCatalog builds the English and Japanese summary catalogs
func newErrorCatalog() (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for code, text := range errorSummaries {
		if err := b.SetString(language.English, string(code), text[0]); err != nil {
			return nil, err
		}
		if err := b.SetString(language.Japanese, string(code), text[1]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Localizer renders error summaries in the caller's language
type Localizer struct {
	catalog catalog.Catalog
}

// NewLocalizer creates a localizer with the built-in catalogs
func NewLocalizer() (*Localizer, error) {
	cat, err := newErrorCatalog()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to build error catalog")
	}
	return &Localizer{catalog: cat}, nil
}

// LanguageFromContext picks the best supported language from the
// accept-language metadata, defaulting to English
func LanguageFromContext(ctx context.Context) language.Tag {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return language.English
	}
	values := md.Get(AcceptLanguageKey)
	if len(values) == 0 {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(values[0])
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := languageMatcher.Match(tags...)
	return supportedLanguages[idx]
}

// Message returns the localised summary followed by the error's own message
func (l *Localizer) Message(tag language.Tag, e *errors.Error) string {
	text, ok := errorSummaries[e.Code]
	if !ok {
		return e.Message
	}
	p := message.NewPrinter(tag, message.Catalog(l.catalog))
	return p.Sprintf(message.Key(string(e.Code), text[0])) + ": " + e.Message
}

// GRPCError converts err to a status error with a localised message
func (l *Localizer) GRPCError(ctx context.Context, err error) error {
	tag := LanguageFromContext(ctx)
	return errors.ToGRPCError(err, errors.WithMessage(func(e *errors.Error) string {
		return l.Message(tag, e)
	}))
}
