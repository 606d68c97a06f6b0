package sender

import (
	"errors"
	"strings"
)

var (
	ErrNameRequired      = errors.New("sender: name is required")
	ErrSignatureRequired = errors.New("sender: both signatures are required")
)

/**
 * Profile は下書きの差出人（常に一人）の固定情報。
 * 生成後は変更できず、全リクエストから読み取り専用で共有される。
 */
type Profile struct {
	name             string
	role             string
	nameVariants     []string
	affiliations     []string
	localSignature   string
	foreignSignature string
}

// Params は Profile を組み立てるための入力。
type Params struct {
	Name             string
	Role             string
	NameVariants     []string
	Affiliations     []string
	LocalSignature   string
	ForeignSignature string
}

// NewProfile は入力を検証して Profile を生成する。
func NewProfile(p Params) (*Profile, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	local := strings.TrimSpace(p.LocalSignature)
	foreign := strings.TrimSpace(p.ForeignSignature)
	if local == "" || foreign == "" {
		return nil, ErrSignatureRequired
	}

	variants := compact(append([]string{name}, p.NameVariants...))
	return &Profile{
		name:             name,
		role:             strings.TrimSpace(p.Role),
		nameVariants:     variants,
		affiliations:     compact(p.Affiliations),
		localSignature:   local,
		foreignSignature: foreign,
	}, nil
}

// Default は組み込みの差出人プロフィールを返す。
func Default() *Profile {
	p, err := NewProfile(Params{
		Name:         "Hitoshi Eguchi",
		Role:         "a Japanese university department chair",
		NameVariants: []string{"江口 均", "江口"},
		Affiliations: []string{"English Department", "北星学園大学", "英文学科"},
		LocalSignature: "江口　均\n" +
			"北星学園大学\n" +
			"英文学科",
		ForeignSignature: "Hitoshi Eguchi\n" +
			"English Department\n" +
			"Hokusei Gakuen University",
	})
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Profile) Name() string { return p.name }

func (p *Profile) Role() string { return p.role }

// NameVariants は署名の名前行として扱う表記の一覧（正式名を含む）。
func (p *Profile) NameVariants() []string {
	return append([]string(nil), p.nameVariants...)
}

// Affiliations は所属行として扱う表記の一覧。
func (p *Profile) Affiliations() []string {
	return append([]string(nil), p.affiliations...)
}

func (p *Profile) LocalSignature() string { return p.localSignature }

func (p *Profile) ForeignSignature() string { return p.foreignSignature }

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
