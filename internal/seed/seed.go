// Package seed loads YAML fixture files and replays them into a contacts
// backend, so an emulator can start with a known set of contacts, channels
// and engagement plans.
package seed

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/memohai/ssmcontacts/internal/contacts"
)

// File is a parsed fixture document.
type File struct {
	AccountID string    `yaml:"account_id"`
	Region    string    `yaml:"region"`
	Contacts  []Contact `yaml:"contacts"`
}

// Contact is a fixture contact with its channels and plan.
type Contact struct {
	Alias       string    `yaml:"alias"`
	DisplayName string    `yaml:"display_name"`
	Type        string    `yaml:"type"`
	Tags        []Tag     `yaml:"tags"`
	Channels    []Channel `yaml:"channels"`
	Plan        []Stage   `yaml:"plan"`
}

// Tag is a fixture tag.
type Tag struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// Channel is a fixture contact channel.
type Channel struct {
	Name            string `yaml:"name"`
	Type            string `yaml:"type"`
	Address         string `yaml:"address"`
	DeferActivation bool   `yaml:"defer_activation"`
}

// Stage is a fixture engagement stage.
type Stage struct {
	DurationInMinutes int      `yaml:"duration_in_minutes"`
	Targets           []Target `yaml:"targets"`
}

// Target names either a channel of the same contact or another seeded
// contact by alias.
type Target struct {
	Channel                string `yaml:"channel"`
	RetryIntervalInMinutes *int   `yaml:"retry_interval_in_minutes"`
	Contact                string `yaml:"contact"`
	Essential              *bool  `yaml:"essential"`
}

// Load reads and checks the fixture at path.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a fixture document and checks its internal references.
func Parse(raw []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	if err := f.check(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) check() error {
	aliases := make([]string, 0, len(f.Contacts))
	for _, c := range f.Contacts {
		if slices.Contains(aliases, c.Alias) {
			return fmt.Errorf("contact %q is defined twice", c.Alias)
		}
		aliases = append(aliases, c.Alias)
	}
	for _, c := range f.Contacts {
		names := make([]string, 0, len(c.Channels))
		for _, ch := range c.Channels {
			if slices.Contains(names, ch.Name) {
				return fmt.Errorf("contact %q: channel %q is defined twice", c.Alias, ch.Name)
			}
			names = append(names, ch.Name)
		}
		for i, stage := range c.Plan {
			for _, t := range stage.Targets {
				if t.Channel != "" && !slices.Contains(names, t.Channel) {
					return fmt.Errorf("contact %q stage %d: unknown channel %q", c.Alias, i, t.Channel)
				}
				if t.Contact != "" && !slices.Contains(aliases, t.Contact) {
					return fmt.Errorf("contact %q stage %d: unknown contact %q", c.Alias, i, t.Contact)
				}
			}
		}
	}
	return nil
}

// Stats counts what Apply created.
type Stats struct {
	Contacts int
	Channels int
}

// Apply creates every contact with an empty plan, then their channels, then
// sets the plans so that targets resolve to the ARNs just created. It stops
// at the first backend error.
func Apply(b *contacts.Backend, f File) (Stats, error) {
	var stats Stats
	contactARNs := map[string]string{}
	channelARNs := map[string]map[string]string{}

	for _, c := range f.Contacts {
		tags := make([]contacts.Tag, 0, len(c.Tags))
		for _, t := range c.Tags {
			tags = append(tags, contacts.Tag{Key: t.Key, Value: t.Value})
		}
		arn, err := b.CreateContact(contacts.CreateContactInput{
			Alias:       c.Alias,
			DisplayName: c.DisplayName,
			Type:        contacts.ContactType(c.Type),
			Tags:        tags,
		})
		if err != nil {
			return stats, fmt.Errorf("contact %q: %w", c.Alias, err)
		}
		contactARNs[c.Alias] = arn
		stats.Contacts++
	}

	for _, c := range f.Contacts {
		channelARNs[c.Alias] = map[string]string{}
		for _, ch := range c.Channels {
			arn, err := b.CreateContactChannel(contacts.CreateChannelInput{
				ContactID:       contactARNs[c.Alias],
				Name:            ch.Name,
				Type:            contacts.ChannelType(ch.Type),
				DeliveryAddress: contacts.DeliveryAddress{SimpleAddress: ch.Address},
				DeferActivation: ch.DeferActivation,
			})
			if err != nil {
				return stats, fmt.Errorf("contact %q channel %q: %w", c.Alias, ch.Name, err)
			}
			channelARNs[c.Alias][ch.Name] = arn
			stats.Channels++
		}
	}

	for _, c := range f.Contacts {
		if len(c.Plan) == 0 {
			continue
		}
		plan, err := resolvePlan(c, contactARNs, channelARNs[c.Alias])
		if err != nil {
			return stats, fmt.Errorf("contact %q plan: %w", c.Alias, err)
		}
		if err := b.UpdateContact(contacts.UpdateContactInput{ContactID: contactARNs[c.Alias], Plan: &plan}); err != nil {
			return stats, fmt.Errorf("contact %q plan: %w", c.Alias, err)
		}
	}
	return stats, nil
}

var errUnresolved = errors.New("unresolved target")

func resolvePlan(c Contact, contactARNs, channelARNs map[string]string) (contacts.PlanInput, error) {
	plan := contacts.PlanInput{Stages: make([]contacts.StageInput, 0, len(c.Plan))}
	for _, stage := range c.Plan {
		targets := make([]contacts.TargetInput, 0, len(stage.Targets))
		for _, t := range stage.Targets {
			var in contacts.TargetInput
			if t.Channel != "" {
				arn, ok := channelARNs[t.Channel]
				if !ok {
					return contacts.PlanInput{}, fmt.Errorf("%w: channel %q", errUnresolved, t.Channel)
				}
				in.ChannelTargetInfo = &contacts.ChannelTargetInfo{ContactChannelID: arn, RetryIntervalInMinutes: t.RetryIntervalInMinutes}
			}
			if t.Contact != "" {
				arn, ok := contactARNs[t.Contact]
				if !ok {
					return contacts.PlanInput{}, fmt.Errorf("%w: contact %q", errUnresolved, t.Contact)
				}
				in.ContactTargetInfo = &contacts.ContactTargetInfo{ContactID: arn, IsEssential: t.Essential}
			}
			targets = append(targets, in)
		}
		plan.Stages = append(plan.Stages, contacts.StageInput{DurationInMinutes: stage.DurationInMinutes, Targets: targets})
	}
	return plan, nil
}
