package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/harrison/advisor/internal/filelock"
	"github.com/harrison/advisor/internal/finance"
	"github.com/harrison/advisor/internal/models"
)

// UserConfigFile is the name of the user defaults document inside the
// output directory.
const UserConfigFile = "user_config.json"

// ProductData holds the default inputs for the product launch
// pipeline.
type ProductData struct {
	ProductName        string  `json:"product_name"`
	ProductDescription string  `json:"product_description"`
	LaunchDate         string  `json:"launch_date"`
	TargetMarket       string  `json:"target_market"`
	Budget             float64 `json:"budget"`
}

// UserConfig is the persisted JSON document of per-pipeline input
// defaults. It is read at startup and rewritten wholesale on save.
type UserConfig struct {
	FinancialData finance.FinancialData `json:"financial_data"`
	ProductData   ProductData           `json:"product_data"`
	WebsiteURL    string                `json:"website_url"`
	ResearchTopic string                `json:"research_topic"`
}

// DefaultUserConfig returns the built-in defaults.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		FinancialData: finance.FinancialData{
			Income: 5000,
			Expenses: finance.Expenses{
				Rent:           1500,
				Utilities:      300,
				Groceries:      400,
				Transportation: 200,
				Entertainment:  150,
				Other:          450,
			},
			Debts: finance.Debts{
				CreditCard:  finance.Debt{Balance: 2000, InterestRate: 0.18},
				StudentLoan: finance.Debt{Balance: 15000, InterestRate: 0.045},
			},
			SavingsGoal: 500,
		},
		ProductData: ProductData{
			ProductName:        "New Product",
			ProductDescription: "A description of your new product.",
			LaunchDate:         "2025-12-31",
			TargetMarket:       "General consumers",
			Budget:             50000,
		},
		WebsiteURL:    "https://en.wikipedia.org/wiki/Alan_Turing",
		ResearchTopic: "Artificial intelligence",
	}
}

// UserConfigPath returns the location of the user defaults document
// for a given output directory.
func UserConfigPath(outputDir string) string {
	return filepath.Join(outputDir, UserConfigFile)
}

// LoadUserConfig reads the user defaults from path. A missing or
// unparseable file silently yields the built-in defaults; the second
// return value reports whether the file was actually used.
func LoadUserConfig(path string) (*UserConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultUserConfig(), false
	}

	cfg := DefaultUserConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultUserConfig(), false
	}
	return cfg, true
}

// SaveUserConfig rewrites the user defaults document wholesale. The
// write is atomic and serialized against concurrent saves.
func SaveUserConfig(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}
	if err := filelock.LockAndWrite(path, append(data, '\n')); err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}
	return nil
}

// ResetUserConfig deletes the persisted document so the built-in
// defaults apply again. A missing file is not an error.
func ResetUserConfig(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &models.PersistenceError{Path: path, Err: err}
	}
	return nil
}
