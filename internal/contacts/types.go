package contacts

// ContactType distinguishes a person from an escalation policy.
type ContactType string

// Contact types.
const (
	ContactTypePersonal   ContactType = "PERSONAL"
	ContactTypeEscalation ContactType = "ESCALATION"
)

// ContactTypes lists the accepted contact types in API order.
var ContactTypes = []ContactType{ContactTypePersonal, ContactTypeEscalation}

// ChannelType is the delivery medium of a contact channel.
type ChannelType string

// Channel types.
const (
	ChannelTypeSMS   ChannelType = "SMS"
	ChannelTypeVoice ChannelType = "VOICE"
	ChannelTypeEmail ChannelType = "EMAIL"
)

// ChannelTypes lists the accepted channel types in API order.
var ChannelTypes = []ChannelType{ChannelTypeSMS, ChannelTypeVoice, ChannelTypeEmail}

// Activation states reported for a contact channel.
const (
	ActivationActivated    = "ACTIVATED"
	ActivationNotActivated = "NOT_ACTIVATED"
)

// Tag is a key/value label attached to a contact.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// DeliveryAddress holds where a channel delivers to.
type DeliveryAddress struct {
	SimpleAddress string `json:"SimpleAddress"`
}

// ChannelTargetInfo is the wire shape of a channel engagement target.
type ChannelTargetInfo struct {
	ContactChannelID       string `json:"ContactChannelId"`
	RetryIntervalInMinutes *int   `json:"RetryIntervalInMinutes,omitempty"`
}

// ContactTargetInfo is the wire shape of a contact engagement target.
type ContactTargetInfo struct {
	ContactID   string `json:"ContactId"`
	IsEssential *bool  `json:"IsEssential,omitempty"`
}

// TargetInput carries exactly one of the two target shapes.
type TargetInput struct {
	ChannelTargetInfo *ChannelTargetInfo `json:"ChannelTargetInfo,omitempty"`
	ContactTargetInfo *ContactTargetInfo `json:"ContactTargetInfo,omitempty"`
}

// StageInput is one requested engagement stage.
type StageInput struct {
	DurationInMinutes int           `json:"DurationInMinutes"`
	Targets           []TargetInput `json:"Targets"`
}

// PlanInput is a requested engagement plan.
type PlanInput struct {
	Stages []StageInput `json:"Stages"`
}

// CreateContactInput holds the arguments of CreateContact.
type CreateContactInput struct {
	Alias       string      `json:"Alias"`
	DisplayName string      `json:"DisplayName,omitempty"`
	Type        ContactType `json:"Type"`
	Plan        PlanInput   `json:"Plan"`
	Tags        []Tag       `json:"Tags,omitempty"`
}

// UpdateContactInput holds the arguments of UpdateContact. Nil fields are
// left untouched.
type UpdateContactInput struct {
	ContactID   string     `json:"ContactId"`
	DisplayName *string    `json:"DisplayName,omitempty"`
	Plan        *PlanInput `json:"Plan,omitempty"`
}

// CreateChannelInput holds the arguments of CreateContactChannel.
type CreateChannelInput struct {
	ContactID       string          `json:"ContactId"`
	Name            string          `json:"Name"`
	Type            ChannelType     `json:"Type"`
	DeliveryAddress DeliveryAddress `json:"DeliveryAddress"`
	DeferActivation bool            `json:"DeferActivation,omitempty"`
}

// UpdateChannelInput holds the arguments of UpdateContactChannel. Nil fields
// are left untouched.
type UpdateChannelInput struct {
	ContactChannelID string           `json:"ContactChannelId"`
	Name             *string          `json:"Name,omitempty"`
	DeliveryAddress  *DeliveryAddress `json:"DeliveryAddress,omitempty"`
}

// ListContactsInput holds the arguments of ListContacts.
type ListContactsInput struct {
	AliasPrefix string      `json:"AliasPrefix,omitempty"`
	Type        ContactType `json:"Type,omitempty"`
	NextToken   string      `json:"NextToken,omitempty"`
	MaxResults  int         `json:"MaxResults,omitempty"`
}

// ListChannelsInput holds the arguments of ListContactChannels.
type ListChannelsInput struct {
	ContactID  string `json:"ContactId,omitempty"`
	NextToken  string `json:"NextToken,omitempty"`
	MaxResults int    `json:"MaxResults,omitempty"`
}

// ContactDescription is the full view returned by GetContact.
type ContactDescription struct {
	ContactArn  string          `json:"ContactArn"`
	Alias       string          `json:"Alias"`
	DisplayName string          `json:"DisplayName,omitempty"`
	Type        ContactType     `json:"Type"`
	Plan        PlanDescription `json:"Plan"`
	Tags        []Tag           `json:"Tags"`
}

// ContactSummary is the lighter view used in ListContacts pages.
type ContactSummary struct {
	ContactArn  string      `json:"ContactArn"`
	Alias       string      `json:"Alias"`
	DisplayName string      `json:"DisplayName,omitempty"`
	Type        ContactType `json:"Type"`
}

// PlanDescription renders an engagement plan.
type PlanDescription struct {
	Stages []StageDescription `json:"Stages"`
}

// StageDescription renders one stage; Targets reuse the input wire shape with
// defaults filled in.
type StageDescription struct {
	DurationInMinutes int           `json:"DurationInMinutes"`
	Targets           []TargetInput `json:"Targets"`
}

// ChannelDescription is the view returned by GetContactChannel and in
// ListContactChannels pages.
type ChannelDescription struct {
	ContactChannelArn string          `json:"ContactChannelArn"`
	ContactArn        string          `json:"ContactArn"`
	Name              string          `json:"Name"`
	Type              ChannelType     `json:"Type"`
	DeliveryAddress   DeliveryAddress `json:"DeliveryAddress"`
	ActivationStatus  string          `json:"ActivationStatus"`
}

// ContactPage is one page of ListContacts.
type ContactPage struct {
	Contacts  []ContactSummary `json:"Contacts"`
	NextToken string           `json:"NextToken,omitempty"`
}

// ChannelPage is one page of ListContactChannels.
type ChannelPage struct {
	ContactChannels []ChannelDescription `json:"ContactChannels"`
	NextToken       string               `json:"NextToken,omitempty"`
}
