package criteria

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the criteria YAML file.
// SSOT 핵심: KnownFields(true)로 오타/미사용 필드 즉시 실패
func Load(path string) (*Criteria, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read criteria file: %w", err)
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse criteria file %s: %w", path, err)
	}

	cfg := file.Screening
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills unset hard-filter fields from the built-in defaults.
func applyDefaults(c *Criteria) {
	d := Default()
	if c.MinMarketCap == 0 {
		c.MinMarketCap = d.MinMarketCap
	}
	if c.MaxMarketCap == 0 {
		c.MaxMarketCap = d.MaxMarketCap
	}
	if c.MinPrice == 0 {
		c.MinPrice = d.MinPrice
	}
	if c.TopN == 0 {
		c.TopN = d.TopN
	}
}

// Hash generates a deterministic SHA256 hash of the criteria.
// 주의: map 순서 문제 방지를 위해 canonical JSON 사용
func Hash(c *Criteria) (string, error) {
	jsonBytes, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
