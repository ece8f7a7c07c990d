package gemini

import "github.com/dhruvi159/Voxhire-Project/internal/llm"

// ProviderName is the AI_PROVIDER value that selects this client.
const ProviderName = "gemini"

func init() {
	llm.RegisterProvider(ProviderName, func() (llm.Provider, error) {
		cfg, err := NewConfig()
		if err != nil {
			return nil, err
		}
		return NewClient(cfg)
	})
}
