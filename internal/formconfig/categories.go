package formconfig

import (
	"context"
	"strings"
)

// CategoryGroup is the subcategory list regrouped under its parent category,
// preserving backend order.
type CategoryGroup struct {
	Label         string
	ParentCode    string
	Subcategories []SubcategoryRef
}

type SubcategoryRef struct {
	Code string
	Name string
}

// CategoryGroups groups the flat subcategory list by parent category.
func (s *Service) CategoryGroups(ctx context.Context) ([]CategoryGroup, error) {
	subcats, err := s.SubCategories(ctx)
	if err != nil {
		return nil, err
	}
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, sub := range subcats {
		i, ok := index[sub.ParentCategory]
		if !ok {
			i = len(groups)
			index[sub.ParentCategory] = i
			groups = append(groups, CategoryGroup{Label: sub.ParentCategory, ParentCode: sub.ParentCode})
		}
		groups[i].Subcategories = append(groups[i].Subcategories, SubcategoryRef{Code: sub.Code, Name: sub.Name})
	}
	return groups, nil
}

type SuggestionKind string

const (
	SuggestionCategory    SuggestionKind = "category"
	SuggestionSubcategory SuggestionKind = "subcategory"
)

// Suggestion is one type-ahead match against the category catalog.
type Suggestion struct {
	Kind        SuggestionKind
	Label       string
	ParentLabel string // set for subcategory suggestions
}

const maxSuggestions = 7

// Suggest matches query case-insensitively against category and subcategory
// names and returns at most seven suggestions, parents before their
// children within each group.
func (s *Service) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	groups, err := s.CategoryGroups(ctx)
	if err != nil {
		return nil, err
	}
	var results []Suggestion
	for _, group := range groups {
		if strings.Contains(strings.ToLower(group.Label), q) {
			results = append(results, Suggestion{Kind: SuggestionCategory, Label: group.Label})
		}
		for _, sub := range group.Subcategories {
			if strings.Contains(strings.ToLower(sub.Name), q) {
				results = append(results, Suggestion{
					Kind:        SuggestionSubcategory,
					Label:       sub.Name,
					ParentLabel: group.Label,
				})
			}
		}
	}
	if len(results) > maxSuggestions {
		results = results[:maxSuggestions]
	}
	return results, nil
}
