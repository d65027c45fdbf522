package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MDSCJ/Data-Collection/internal/common/logger"
	"github.com/MDSCJ/Data-Collection/internal/common/metrics"
	"github.com/MDSCJ/Data-Collection/internal/form/members"
	"github.com/MDSCJ/Data-Collection/pkg/registry"
)

const (
	MessageLocationRequired = "Please confirm your location on the map before submitting."
	MessageMemberRequired   = "Please add at least one family member."
	messageFieldInvalid     = "Please correct the required field: '%s'."

	memberNameLabel = "Family Member Name"
	memberAgeLabel  = "Family Member Age"

	memberNameRules       = "required"
	memberAgeRules        = "required,age"
	memberIdentifierRules = "omitempty,nic"
)

// Verdict is the outcome of one validation pass. Field is the key of the
// first failing field, empty for the location and member-count checks.
type Verdict struct {
	Valid   bool
	Message string
	Field   string
}

// Input is everything the validator looks at.
type Input struct {
	Pinned  bool
	Fields  map[string]string
	Members []members.Record
}

type FormValidator struct {
	validate *validator.Validate
	fields   []registry.FieldDefinition
	logger   logger.Logger
}

// New builds a validator for the respondent fields in reg. Every field's
// rules are checked up front so a bad definition fails here rather than
// during input.
func New(reg *registry.FormRegistry, log logger.Logger) (*FormValidator, error) {
	if reg == nil {
		reg = registry.Default()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	v := validator.New()
	if err := v.RegisterValidation("age", validateAge); err != nil {
		return nil, fmt.Errorf("register age rule: %w", err)
	}
	if err := v.RegisterValidation("nic", validateIdentifier); err != nil {
		return nil, fmt.Errorf("register nic rule: %w", err)
	}

	fv := &FormValidator{
		validate: v,
		fields:   reg.Fields,
		logger:   log.WithFields(map[string]interface{}{"component": "form-validator"}),
	}
	for _, f := range reg.Fields {
		if err := fv.checkRules(f.Rules); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return fv, nil
}

// Validate runs the ordered checks; the first failure wins.
func (fv *FormValidator) Validate(in Input) Verdict {
	verdict := fv.run(in)
	label := "valid"
	if !verdict.Valid {
		label = "invalid"
	}
	metrics.ValidationRuns.WithLabelValues(label).Inc()
	return verdict
}

func (fv *FormValidator) run(in Input) Verdict {
	if !in.Pinned {
		return Verdict{Message: MessageLocationRequired}
	}
	if len(in.Members) == 0 {
		return Verdict{Message: MessageMemberRequired}
	}

	for _, f := range fv.fields {
		if !fv.valid(in.Fields[f.Name], f.Rules) {
			return invalidField(f.Name, f.Label)
		}
	}

	for _, m := range in.Members {
		if !fv.valid(m.Name, memberNameRules) {
			return invalidField(members.NameKey(m.ID), memberNameLabel)
		}
		if !fv.valid(m.Age, memberAgeRules) {
			return invalidField(members.AgeKey(m.ID), memberAgeLabel)
		}
		if m.IdentifierVisible && !fv.valid(m.Identifier, memberIdentifierRules) {
			return invalidField(members.IdentifierKey(m.ID), "")
		}
	}

	return Verdict{Valid: true}
}

func (fv *FormValidator) valid(value, rules string) bool {
	if rules == "" {
		return true
	}
	return fv.validate.Var(value, rules) == nil
}

// checkRules rejects tags the validator does not know, which it reports by panicking.
func (fv *FormValidator) checkRules(rules string) (err error) {
	if rules == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid rules %q: %v", rules, r)
		}
	}()
	_ = fv.validate.Var("", rules)
	return nil
}

func invalidField(key, label string) Verdict {
	if label == "" {
		label = key
	}
	return Verdict{
		Message: fmt.Sprintf(messageFieldInvalid, label),
		Field:   key,
	}
}

// validateAge accepts a whole number of years in the allowed range.
func validateAge(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	return n >= members.MinAge && n <= members.MaxAge
}

func validateIdentifier(fl validator.FieldLevel) bool {
	return members.IdentifierPattern.MatchString(fl.Field().String())
}
