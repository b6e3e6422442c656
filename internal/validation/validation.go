// Package validation holds the pure payload validators for the profile API.
// Each validator maps a request payload to a map of field-level messages and
// an isValid flag; nothing here touches the database.
package validation

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	handleMinLen = 2
	handleMaxLen = 40
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate accepts the wire formats the frontend sends for from/to dates.
func ParseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

type ProfileInput struct {
	Handle    string
	Status    string
	Skills    string
	Website   *string
	Youtube   *string
	Twitter   *string
	Facebook  *string
	Linkedin  *string
	Instagram *string
}

func ValidateProfileInput(in ProfileInput) (map[string]string, bool) {
	errs := map[string]string{}

	if isBlank(in.Handle) {
		errs["handle"] = "Profile handle is required"
	} else if utf8.RuneCountInString(in.Handle) < handleMinLen || utf8.RuneCountInString(in.Handle) > handleMaxLen {
		errs["handle"] = "Handle needs to be between 2 and 40 characters"
	}

	if isBlank(in.Status) {
		errs["status"] = "Status field is required"
	}
	if isBlank(in.Skills) {
		errs["skills"] = "Skills field is required"
	}

	urlFields := map[string]*string{
		"website":   in.Website,
		"youtube":   in.Youtube,
		"twitter":   in.Twitter,
		"facebook":  in.Facebook,
		"linkedin":  in.Linkedin,
		"instagram": in.Instagram,
	}
	for field, value := range urlFields {
		if value != nil && !isBlank(*value) && !isValidURL(*value) {
			errs[field] = "Not a valid URL"
		}
	}

	return errs, len(errs) == 0
}

type ExperienceInput struct {
	Title   string
	Company string
	From    string
	To      *string
}

func ValidateExperienceInput(in ExperienceInput) (map[string]string, bool) {
	errs := map[string]string{}

	if isBlank(in.Title) {
		errs["title"] = "Job title field is required"
	}
	if isBlank(in.Company) {
		errs["company"] = "Company field is required"
	}
	if isBlank(in.From) {
		errs["from"] = "From date field is required"
	} else if _, err := ParseDate(in.From); err != nil {
		errs["from"] = "From date is not a valid date"
	}
	if in.To != nil && !isBlank(*in.To) {
		if _, err := ParseDate(*in.To); err != nil {
			errs["to"] = "To date is not a valid date"
		}
	}

	return errs, len(errs) == 0
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           *string
}

func ValidateEducationInput(in EducationInput) (map[string]string, bool) {
	errs := map[string]string{}

	if isBlank(in.School) {
		errs["school"] = "School field is required"
	}
	if isBlank(in.Degree) {
		errs["degree"] = "Degree field is required"
	}
	if isBlank(in.FieldOfStudy) {
		errs["fieldofstudy"] = "Field of study field is required"
	}
	if isBlank(in.From) {
		errs["from"] = "From date field is required"
	} else if _, err := ParseDate(in.From); err != nil {
		errs["from"] = "From date is not a valid date"
	}
	if in.To != nil && !isBlank(*in.To) {
		if _, err := ParseDate(*in.To); err != nil {
			errs["to"] = "To date is not a valid date"
		}
	}

	return errs, len(errs) == 0
}

// SplitSkills normalizes the comma-separated skills field into a trimmed,
// ordered list. Empty segments are dropped.
func SplitSkills(csv string) []string {
	parts := strings.Split(csv, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
