package contacts

import (
	"fmt"
	"slices"
	"strings"
)

// Contact is a person or an escalation policy together with its engagement
// plan. Related channels and contacts are referenced by ARN only.
type Contact struct {
	ARN         string
	Alias       string
	DisplayName string
	Type        ContactType
	Tags        []Tag
	Plan        []Stage
}

// ContactARN derives the ARN of the contact with alias in the given scope.
func ContactARN(region, accountID, alias string) string {
	return fmt.Sprintf("arn:aws:iam:%s:%s:contact/%s", region, accountID, alias)
}

// NewContact validates in and builds a contact scoped to region and
// accountID. The first validation failure is returned.
func NewContact(in CreateContactInput, region, accountID string) (*Contact, error) {
	if err := ValidateAlias(in.Alias); err != nil {
		return nil, err
	}
	if err := ValidateType("type", in.Type, ContactTypes); err != nil {
		return nil, err
	}
	plan, err := BuildPlan(in.Plan)
	if err != nil {
		return nil, err
	}
	return &Contact{
		ARN:         ContactARN(region, accountID, in.Alias),
		Alias:       in.Alias,
		DisplayName: in.DisplayName,
		Type:        in.Type,
		Tags:        slices.Clone(in.Tags),
		Plan:        plan,
	}, nil
}

// SetPlan replaces the whole engagement plan. On error the current plan is
// kept.
func (c *Contact) SetPlan(in PlanInput) error {
	plan, err := BuildPlan(in)
	if err != nil {
		return err
	}
	c.Plan = plan
	return nil
}

// SetTags merges tags by key: existing keys get the new value in place, new
// keys are appended.
func (c *Contact) SetTags(tags []Tag) {
	merged := slices.Clone(c.Tags)
	for _, tag := range tags {
		idx := slices.IndexFunc(merged, func(t Tag) bool { return t.Key == tag.Key })
		if idx >= 0 {
			merged[idx].Value = tag.Value
			continue
		}
		merged = append(merged, tag)
	}
	c.Tags = merged
}

// RemoveTags drops tags whose key is in keys.
func (c *Contact) RemoveTags(keys []string) {
	c.Tags = slices.DeleteFunc(slices.Clone(c.Tags), func(t Tag) bool {
		return slices.Contains(keys, t.Key)
	})
}

// Describe returns the full view of the contact.
func (c *Contact) Describe() ContactDescription {
	tags := slices.Clone(c.Tags)
	if tags == nil {
		tags = []Tag{}
	}
	return ContactDescription{
		ContactArn:  c.ARN,
		Alias:       c.Alias,
		DisplayName: c.DisplayName,
		Type:        c.Type,
		Plan:        describePlan(c.Plan),
		Tags:        tags,
	}
}

// ListDescribe returns the summary view used by list pages.
func (c *Contact) ListDescribe() ContactSummary {
	return ContactSummary{
		ContactArn:  c.ARN,
		Alias:       c.Alias,
		DisplayName: c.DisplayName,
		Type:        c.Type,
	}
}

// contactShortID extracts the alias part of a contact ARN. Values that are
// not contact ARNs are returned unchanged.
func contactShortID(contactID string) string {
	_, resource, ok := strings.Cut(contactID, ":contact/")
	if !ok || resource == "" {
		return contactID
	}
	if idx := strings.LastIndex(resource, "/"); idx >= 0 {
		return resource[idx+1:]
	}
	return resource
}
