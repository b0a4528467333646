package contacts

import (
	"fmt"

	"github.com/google/uuid"
)

// ContactChannel is a delivery endpoint owned by a contact.
type ContactChannel struct {
	ID               string
	ARN              string
	ContactID        string
	Name             string
	Type             ChannelType
	DeliveryAddress  DeliveryAddress
	ActivationStatus string
}

// ChannelARN derives the ARN of channel id owned by contactID.
func ChannelARN(region, accountID, contactID, id string) string {
	return fmt.Sprintf("arn:aws:iam:%s:%s:contact-channel/%s/%s", region, accountID, contactShortID(contactID), id)
}

// NewContactChannel validates in and builds a channel with a fresh id. The
// type is checked before the address because address rules depend on it.
// The owning contact is not looked up.
func NewContactChannel(in CreateChannelInput, region, accountID string) (*ContactChannel, error) {
	if err := ValidateType("type", in.Type, ChannelTypes); err != nil {
		return nil, err
	}
	if err := ValidateDeliveryAddress(in.DeliveryAddress, in.Type); err != nil {
		return nil, err
	}
	status := ActivationActivated
	if in.DeferActivation {
		status = ActivationNotActivated
	}
	id := uuid.NewString()
	return &ContactChannel{
		ID:               id,
		ARN:              ChannelARN(region, accountID, in.ContactID, id),
		ContactID:        in.ContactID,
		Name:             in.Name,
		Type:             in.Type,
		DeliveryAddress:  in.DeliveryAddress,
		ActivationStatus: status,
	}, nil
}

// Describe returns the full view of the channel.
func (c *ContactChannel) Describe() ChannelDescription {
	return ChannelDescription{
		ContactChannelArn: c.ARN,
		ContactArn:        c.ContactID,
		Name:              c.Name,
		Type:              c.Type,
		DeliveryAddress:   c.DeliveryAddress,
		ActivationStatus:  c.ActivationStatus,
	}
}
