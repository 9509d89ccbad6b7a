package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Model      string
	Text       string
	InputLang  string
	OutputLang string
	ListModels bool

	// Generation flags
	MaxNewTokens    int
	Temperature     float64
	TopP            float64
	TopK            int
	TrustRemoteCode bool
	NoChatTemplate  bool

	// Engine flags
	Engine  string
	BaseURL string
	Python  string
}

// DefaultModel is the quantized model directory used when --model is
// not given: the 0.8b checkpoint at 4 bits, as produced by mlxconvert.
const DefaultModel = "output/mlx/cyberagent/NEKO-Translate-0.8b/q4"

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Model:        DefaultModel,
		MaxNewTokens: 512,
		Temperature:  0.0,
		TopP:         1.0,
		TopK:         0,
		Engine:       "mlx",
		BaseURL:      "http://localhost:8080/v1",
		Python:       "python3",
	}
}
