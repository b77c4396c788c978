package formconfig

import "github.com/basaaj/basaaj-go/internal/models"

// Resolver is a pure lookup over a fetched configuration list for one
// (category, offerType) pair. An unconfigured combination is a state, not an
// error: every accessor then answers with the caller-supplied fallback, so
// the form degrades to its defaults instead of failing.
type Resolver struct {
	config *models.OfferFormConfig
	fields map[string]models.FormFieldConfig
}

// NewResolver finds the matching config, if any. The fallback for a field
// absent from the config is a per-call-site authorial decision, not a global
// rule: a title stays required by default, a description does not.
func NewResolver(configs []models.OfferFormConfig, category, offerType string) *Resolver {
	r := &Resolver{fields: make(map[string]models.FormFieldConfig)}
	for i := range configs {
		if configs[i].Category == category && configs[i].OfferType == offerType {
			r.config = &configs[i]
			break
		}
	}
	if r.config != nil {
		for _, f := range r.config.Fields {
			r.fields[f.Name] = f
		}
	}
	return r
}

// Found reports whether the combination was configured.
func (r *Resolver) Found() bool { return r.config != nil }

// Config returns the matched configuration, or nil.
func (r *Resolver) Config() *models.OfferFormConfig { return r.config }

// IsVisible reports whether the named field should render.
func (r *Resolver) IsVisible(name string, fallback bool) bool {
	if f, ok := r.fields[name]; ok {
		return f.Visible
	}
	return fallback
}

// IsRequired reports whether the named field is mandatory.
func (r *Resolver) IsRequired(name string, fallback bool) bool {
	if f, ok := r.fields[name]; ok {
		return f.Required
	}
	return fallback
}

// MaxLength returns the configured length cap for the field, if any.
func (r *Resolver) MaxLength(name string) (int, bool) {
	f, ok := r.fields[name]
	if !ok || f.MaxLength == 0 {
		return 0, false
	}
	return f.MaxLength, true
}

// Constraints returns the config's form-level constraints, or nil.
func (r *Resolver) Constraints() *models.FormConstraints {
	if r.config == nil {
		return nil
	}
	return r.config.Constraints
}
