package validator

import (
	"strings"
	"time"

	"docfill/internal/domain"
)

// Category names the validator family a field is routed to.
type Category string

const (
	CategoryName         Category = "name"
	CategoryOrganization Category = "organization"
	CategoryEmail        Category = "email"
	CategoryPhone        Category = "phone"
	CategoryDate         Category = "date"
	CategoryPassport     Category = "passport_number"
	CategoryZip          Category = "zip"
	CategoryBarNumber    Category = "bar_number"
	CategoryCountry      Category = "country"
	CategoryText         Category = "text"
)

// ValidateFunc validates one value of the named field.
type ValidateFunc func(field, value string) Outcome

// Rule pairs a field-name predicate with the validation applied to matching fields.
type Rule struct {
	Category Category
	Match    func(field string) bool
	Validate ValidateFunc
}

// Registry routes field names to rules. Exact field registrations are
// consulted first, then predicate rules in registration order.
type Registry struct {
	exact map[string]Rule
	rules []Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{exact: make(map[string]Rule)}
}

// Register appends a predicate rule. Earlier rules take priority.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// RegisterField binds a rule to one exact field name.
func (r *Registry) RegisterField(field string, rule Rule) {
	r.exact[field] = rule
}

// Get returns the rule for a field, or false when the field is not validated.
func (r *Registry) Get(field string) (Rule, bool) {
	if rule, ok := r.exact[field]; ok {
		return rule, true
	}
	lower := strings.ToLower(field)
	for _, rule := range r.rules {
		if rule.Match(lower) {
			return rule, true
		}
	}
	return Rule{}, false
}

func containsAny(subs ...string) func(string) bool {
	return func(field string) bool {
		for _, s := range subs {
			if strings.Contains(field, s) {
				return true
			}
		}
		return false
	}
}

func containsAll(subs ...string) func(string) bool {
	return func(field string) bool {
		for _, s := range subs {
			if !strings.Contains(field, s) {
				return false
			}
		}
		return true
	}
}

func passThrough(_, value string) Outcome { return ok(value) }

// DefaultRegistry returns the standard routing table: name, email, phone,
// date, passport number, zip, bar number, country. Fields whose names would
// be misrouted by substring matching are pinned explicitly.
func DefaultRegistry(now func() time.Time) *Registry {
	r := NewRegistry()

	r.Register(Rule{Category: CategoryName, Match: containsAny("name", "surname", "given", "family"), Validate: func(f, v string) Outcome { return ValidateName(v, f) }})
	r.Register(Rule{Category: CategoryEmail, Match: containsAny("email"), Validate: func(_, v string) Outcome { return ValidateEmail(v) }})
	r.Register(Rule{Category: CategoryPhone, Match: containsAny("phone", "mobile", "tel", "fax"), Validate: func(f, v string) Outcome { return ValidatePhone(v, f) }})
	r.Register(Rule{Category: CategoryDate, Match: containsAny("date", "dob", "birth", "expiry"), Validate: func(f, v string) Outcome { return ValidateDate(v, f, now()) }})
	r.Register(Rule{Category: CategoryPassport, Match: containsAll("passport", "number"), Validate: func(_, v string) Outcome { return ValidatePassportNumber(v) }})
	r.Register(Rule{Category: CategoryZip, Match: containsAny("zip", "postal"), Validate: func(_, v string) Outcome { return ValidateZip(v) }})
	r.Register(Rule{Category: CategoryBarNumber, Match: containsAll("bar", "number"), Validate: func(_, v string) Outcome { return ValidateBarNumber(v) }})
	r.Register(Rule{Category: CategoryCountry, Match: containsAny("country", "nationality"), Validate: func(_, v string) Outcome { return ValidateCountry(v) }})

	// "firm_name" would route to personal-name rules and "place_of_birth" to dates.
	r.RegisterField(domain.FieldFirmName, Rule{Category: CategoryOrganization, Validate: func(f, v string) Outcome { return ValidateOrganizationName(v, f) }})
	r.RegisterField(domain.FieldPlaceOfBirth, Rule{Category: CategoryText, Validate: passThrough})

	return r
}
