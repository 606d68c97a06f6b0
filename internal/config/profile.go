package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/sender"
)

const envSenderProfileFile = "SENDER_PROFILE_FILE"

// senderProfileFile は差出人プロフィール YAML の形。
type senderProfileFile struct {
	Name         string   `yaml:"name"`
	Role         string   `yaml:"role"`
	NameVariants []string `yaml:"name_variants"`
	Affiliations []string `yaml:"affiliations"`
	Signature    struct {
		Japanese string `yaml:"japanese"`
		English  string `yaml:"english"`
	} `yaml:"signature"`
}

/**
 * LoadSenderProfile は SENDER_PROFILE_FILE があればそれを読み、なければ組み込みの差出人を返す。
 * 起動時に一度だけ呼ぶ。以降プロフィールは変更されない。
 */
func LoadSenderProfile() (*sender.Profile, error) {
	path := getEnv(envSenderProfileFile, "")
	if path == "" {
		return sender.Default(), nil
	}
	return LoadSenderProfileFile(path)
}

// LoadSenderProfileFile は YAML ファイルから差出人プロフィールを読む。未知のキーはエラー。
func LoadSenderProfileFile(path string) (*sender.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open sender profile: %w", err)
	}
	defer f.Close()

	var raw senderProfileFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("config: decode sender profile %s: %w", path, err)
	}

	profile, err := sender.NewProfile(sender.Params{
		Name:             raw.Name,
		Role:             raw.Role,
		NameVariants:     raw.NameVariants,
		Affiliations:     raw.Affiliations,
		LocalSignature:   raw.Signature.Japanese,
		ForeignSignature: raw.Signature.English,
	})
	if err != nil {
		return nil, fmt.Errorf("config: sender profile %s: %w", path, err)
	}
	return profile, nil
}
