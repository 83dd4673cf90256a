package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCategory = errors.New("invalid category")
)

type PluginId string

type Category string

const (
	CategoryBackground Category = "background"
	CategoryHover      Category = "hover"
	CategoryText       Category = "text"
)

var Categories = []Category{
	CategoryBackground,
	CategoryHover,
	CategoryText,
}

func ParseCategory(value string) (Category, error) {
	for _, c := range Categories {
		if string(c) == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, value)
}

// Descriptor is the static metadata of a plugin, the shape consumed by the
// selection UI.
type Descriptor struct {
	Id             PluginId `json:"id"`
	DisplayName    string   `json:"displayName"`
	Category       Category `json:"category"`
	TargetSelector string   `json:"targetSelector"`
}
