package dto

import (
	"encoding/json"
	"strings"
)

// FeatureList accepts either a JSON array or the admin form's
// comma-separated string.
type FeatureList []string

func (f *FeatureList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = cleanFeatures(list)
		return nil
	}
	var csv string
	if err := json.Unmarshal(data, &csv); err != nil {
		return err
	}
	*f = ParseFeatures(csv)
	return nil
}

// ParseFeatures splits a comma-separated feature string, dropping blanks.
func ParseFeatures(csv string) FeatureList {
	return cleanFeatures(strings.Split(csv, ","))
}

func cleanFeatures(in []string) FeatureList {
	out := FeatureList{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type ProductRequest struct {
	Title    string      `json:"title"`
	Price    int64       `json:"price"`
	Features FeatureList `json:"features"`
	Best     bool        `json:"best"`
}

type AdRequest struct {
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl"`
	Text     string `json:"text"`
	Active   bool   `json:"active"`
}
