package catalog

import (
	"strings"

	"github.com/matzehuels/parcelview/pkg/errors"
)

// Category groups catalog items for browsing.
type Category string

const (
	Books       Category = "Books"
	Games       Category = "Games"
	Fashion     Category = "Fashion"
	Electronics Category = "Electronics"
	Hobbies     Category = "Hobbies"
	Other       Category = "Other"
)

// AllCategories lists categories in display order.
var AllCategories = []Category{Books, Games, Fashion, Electronics, Hobbies, Other}

var categoryLabels = map[Category]string{
	Books:       "本・メディア",
	Games:       "ゲーム",
	Fashion:     "ファッション",
	Electronics: "電子機器",
	Hobbies:     "ホビー",
	Other:       "その他",
}

// Label returns the Japanese display label.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Order returns the display position, with unknown categories last.
func (c Category) Order() int {
	for i, k := range AllCategories {
		if k == c {
			return i
		}
	}
	return len(AllCategories)
}

// ParseCategory accepts an English name (any case) or a Japanese label.
// An empty string maps to Other.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Other, nil
	}
	for _, c := range AllCategories {
		if strings.EqualFold(s, string(c)) || s == c.Label() {
			return c, nil
		}
	}
	if strings.EqualFold(s, "hobby") {
		return Hobbies, nil
	}
	return "", errors.New(errors.ErrCodeInvalidCategory, "unknown category %q", s)
}

// Kind describes how an item compacts when stacked in a parcel.
type Kind int

const (
	Rigid Kind = iota // keeps its height
	Soft              // textiles, compress in height
	Plush             // stuffed toys, compress more
)

func (k Kind) String() string {
	switch k {
	case Soft:
		return "soft"
	case Plush:
		return "plush"
	default:
		return "rigid"
	}
}

var plushKeywords = []string{"plush", "ぬいぐるみ", "ちびぐるみ"}

// Classify returns the stacking kind of an item. Plush keywords in either
// name win over the category; Fashion items are soft; the rest are rigid.
func Classify(it Item) Kind {
	name := strings.ToLower(it.Name) + " " + it.NameJP
	for _, kw := range plushKeywords {
		if strings.Contains(name, kw) {
			return Plush
		}
	}
	if it.Category == Fashion {
		return Soft
	}
	return Rigid
}
