package voices

import "context"

type VoiceServiceAPI interface {
	ListVoices(ctx context.Context, opts ListOptions) Catalog
	AllVoices(ctx context.Context) Catalog
	TaggedVoices(ctx context.Context, opts ListOptions) ([]TaggedVoice, bool)
	SeedVoices(ctx context.Context) (int, error)
	ExportWorkbook(ctx context.Context) ([]byte, error)
	ClearCache(ctx context.Context)
}
