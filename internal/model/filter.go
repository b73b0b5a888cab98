package model

import (
	"slices"
	"strings"
)

// FilterParams are the two user inputs the resource view is derived from
type FilterParams struct {
	Search string
	Tags   []string
}

func (p FilterParams) IsEmpty() bool {
	return strings.TrimSpace(p.Search) == "" && len(p.Tags) == 0
}

// Filter returns the resources matching the search term and containing all selected tags.
// The relative order of the input is preserved and the input slice is not modified.
func Filter(resources []Resource, params FilterParams) []Resource {
	term := strings.ToLower(strings.TrimSpace(params.Search))
	res := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if term != "" && !matchesTerm(r, term) {
			continue
		}
		if !hasAllTags(r, params.Tags) {
			continue
		}
		res = append(res, r)
	}
	return res
}

func matchesTerm(r Resource, term string) bool {
	if strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	return r.Description != nil && strings.Contains(strings.ToLower(*r.Description), term)
}

func hasAllTags(r Resource, tags []string) bool {
	for _, t := range tags {
		if !r.HasTag(t) {
			return false
		}
	}
	return true
}

// CollectTags returns the sorted union of all tags of the given resources
func CollectTags(resources []Resource) []string {
	tags := []string{}
	check := map[string]bool{}
	for _, r := range resources {
		for _, t := range r.TagsList {
			if !check[t] {
				check[t] = true
				tags = append(tags, t)
			}
		}
	}
	slices.Sort(tags)
	return tags
}
