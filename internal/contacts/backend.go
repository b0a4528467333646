package contacts

import (
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/memohai/ssmcontacts/internal/pagination"
)

// Backend owns the contacts and contact channels of one account and region.
// Every operation holds the backend lock for its whole duration.
type Backend struct {
	accountID string
	region    string
	logger    *slog.Logger

	mu           sync.Mutex
	contacts     map[string]*Contact
	contactOrder []string
	channels     map[string]*ContactChannel
	channelOrder []string
}

// NewBackend creates an empty backend for accountID and region.
func NewBackend(log *slog.Logger, accountID, region string) *Backend {
	if log == nil {
		log = slog.Default()
	}
	return &Backend{
		accountID: accountID,
		region:    region,
		logger: log.With(
			slog.String("component", "contacts"),
			slog.String("account_id", accountID),
			slog.String("region", region),
		),
		contacts: map[string]*Contact{},
		channels: map[string]*ContactChannel{},
	}
}

// AccountID returns the account the backend is scoped to.
func (b *Backend) AccountID() string { return b.accountID }

// Region returns the region the backend is scoped to.
func (b *Backend) Region() string { return b.region }

// CreateContact stores a new contact and returns its ARN.
func (b *Backend) CreateContact(in CreateContactInput) (string, error) {
	contact, err := NewContact(in, b.region, b.accountID)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.contacts[contact.ARN]; exists {
		return "", conflictError("Contact with alias '%s' already exists", contact.Alias)
	}
	b.contacts[contact.ARN] = contact
	b.contactOrder = append(b.contactOrder, contact.ARN)
	b.logger.Debug("contact created", slog.String("arn", contact.ARN), slog.String("type", string(contact.Type)))
	return contact.ARN, nil
}

// GetContact returns the full view of the contact with the given ARN.
func (b *Backend) GetContact(contactID string) (ContactDescription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	contact, ok := b.contacts[contactID]
	if !ok {
		return ContactDescription{}, notFoundError("Contact '%s' not found", contactID)
	}
	return contact.Describe(), nil
}

// UpdateContact applies the non-nil fields of in. A missing contact is
// reported before the plan is looked at, and a rejected plan leaves the
// contact unchanged.
func (b *Backend) UpdateContact(in UpdateContactInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	contact, ok := b.contacts[in.ContactID]
	if !ok {
		return notFoundError("Contact '%s' not found", in.ContactID)
	}
	if in.Plan != nil {
		if err := contact.SetPlan(*in.Plan); err != nil {
			return err
		}
	}
	if in.DisplayName != nil {
		contact.DisplayName = *in.DisplayName
	}
	return nil
}

// DeleteContact removes the contact if present. Engagement plans and
// channels that reference it are left as they are.
func (b *Backend) DeleteContact(contactID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.contacts[contactID]; !ok {
		return
	}
	delete(b.contacts, contactID)
	b.contactOrder = slices.DeleteFunc(b.contactOrder, func(arn string) bool { return arn == contactID })
	b.logger.Debug("contact deleted", slog.String("arn", contactID))
}

// ListContacts returns one page of contact summaries in creation order,
// optionally filtered by type. AliasPrefix is accepted but not applied.
func (b *Backend) ListContacts(in ListContactsInput) (ContactPage, error) {
	if in.Type != "" {
		if err := ValidateType("type", in.Type, ContactTypes); err != nil {
			return ContactPage{}, err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	matched := make([]*Contact, 0, len(b.contactOrder))
	for _, arn := range b.contactOrder {
		contact := b.contacts[arn]
		if in.Type != "" && contact.Type != in.Type {
			continue
		}
		matched = append(matched, contact)
	}
	page, next, err := pagination.Paginate(matched, func(c *Contact) string { return c.ARN }, in.NextToken, in.MaxResults)
	if err != nil {
		return ContactPage{}, paginationError(err)
	}
	out := ContactPage{Contacts: make([]ContactSummary, 0, len(page)), NextToken: next}
	for _, contact := range page {
		out.Contacts = append(out.Contacts, contact.ListDescribe())
	}
	return out, nil
}

// CreateContactChannel stores a new channel and returns its ARN.
func (b *Backend) CreateContactChannel(in CreateChannelInput) (string, error) {
	channel, err := NewContactChannel(in, b.region, b.accountID)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.channels[channel.ARN] = channel
	b.channelOrder = append(b.channelOrder, channel.ARN)
	b.logger.Debug("contact channel created", slog.String("arn", channel.ARN), slog.String("contact_arn", channel.ContactID))
	return channel.ARN, nil
}

// GetContactChannel returns the channel identified by ARN or bare id.
func (b *Backend) GetContactChannel(channelID string) (ChannelDescription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	channel := b.findChannel(channelID)
	if channel == nil {
		return ChannelDescription{}, notFoundError("Contact channel '%s' not found", channelID)
	}
	return channel.Describe(), nil
}

// UpdateContactChannel applies the non-nil fields of in. A new address is
// validated against the channel's existing type.
func (b *Backend) UpdateContactChannel(in UpdateChannelInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	channel := b.findChannel(in.ContactChannelID)
	if channel == nil {
		return notFoundError("Contact channel '%s' not found", in.ContactChannelID)
	}
	if in.DeliveryAddress != nil {
		if err := ValidateDeliveryAddress(*in.DeliveryAddress, channel.Type); err != nil {
			return err
		}
	}
	if in.Name != nil {
		channel.Name = *in.Name
	}
	if in.DeliveryAddress != nil {
		channel.DeliveryAddress = *in.DeliveryAddress
	}
	return nil
}

// DeleteContactChannel removes the channel if present. Engagement plan
// targets that reference it are not rewritten.
func (b *Backend) DeleteContactChannel(channelID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	channel := b.findChannel(channelID)
	if channel == nil {
		return
	}
	delete(b.channels, channel.ARN)
	b.channelOrder = slices.DeleteFunc(b.channelOrder, func(arn string) bool { return arn == channel.ARN })
	b.logger.Debug("contact channel deleted", slog.String("arn", channel.ARN))
}

// ListContactChannels returns one page of channels in creation order. When
// ContactID is set only that contact's channels are included.
func (b *Backend) ListContactChannels(in ListChannelsInput) (ChannelPage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	matched := make([]*ContactChannel, 0, len(b.channelOrder))
	for _, arn := range b.channelOrder {
		channel := b.channels[arn]
		if in.ContactID != "" && channel.ContactID != in.ContactID {
			continue
		}
		matched = append(matched, channel)
	}
	page, next, err := pagination.Paginate(matched, func(c *ContactChannel) string { return c.ARN }, in.NextToken, in.MaxResults)
	if err != nil {
		return ChannelPage{}, paginationError(err)
	}
	out := ChannelPage{ContactChannels: make([]ChannelDescription, 0, len(page)), NextToken: next}
	for _, channel := range page {
		out.ContactChannels = append(out.ContactChannels, channel.Describe())
	}
	return out, nil
}

// ListTagsForResource returns the tags of the contact with the given ARN.
func (b *Backend) ListTagsForResource(resourceARN string) ([]Tag, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	contact, ok := b.contacts[resourceARN]
	if !ok {
		return nil, notFoundError("Resource '%s' not found", resourceARN)
	}
	tags := slices.Clone(contact.Tags)
	if tags == nil {
		tags = []Tag{}
	}
	return tags, nil
}

// TagResource adds or overwrites tags on a contact.
func (b *Backend) TagResource(resourceARN string, tags []Tag) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	contact, ok := b.contacts[resourceARN]
	if !ok {
		return notFoundError("Resource '%s' not found", resourceARN)
	}
	contact.SetTags(tags)
	return nil
}

// UntagResource removes the given tag keys from a contact.
func (b *Backend) UntagResource(resourceARN string, keys []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	contact, ok := b.contacts[resourceARN]
	if !ok {
		return notFoundError("Resource '%s' not found", resourceARN)
	}
	contact.RemoveTags(keys)
	return nil
}

// findChannel looks a channel up by ARN, then by id. Callers hold b.mu.
func (b *Backend) findChannel(channelID string) *ContactChannel {
	if channel, ok := b.channels[channelID]; ok {
		return channel
	}
	for _, arn := range b.channelOrder {
		if channel := b.channels[arn]; channel.ID == channelID {
			return channel
		}
	}
	return nil
}

func paginationError(err error) error {
	switch {
	case errors.Is(err, pagination.ErrInvalidToken):
		return validationError("Invalid value provided - NextToken is not valid")
	case errors.Is(err, pagination.ErrInvalidLimit):
		return validationError("Invalid value provided - MaxResults must be between 1 and %d", pagination.MaxLimit)
	default:
		return err
	}
}
