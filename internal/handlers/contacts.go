package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memohai/ssmcontacts/internal/config"
	"github.com/memohai/ssmcontacts/internal/contacts"
	"github.com/memohai/ssmcontacts/internal/logger"
	"github.com/memohai/ssmcontacts/internal/metrics"
)

const unknownOperation = "Unknown"

var credentialScope = regexp.MustCompile(`Credential=[^/,\s]+/[0-9]{8}/([a-z0-9-]+)/`)

type operation func(b *contacts.Backend, body []byte) (any, error)

// ContactsHandler serves the JSON 1.1 contacts API on POST /, dispatching on
// the X-Amz-Target header.
type ContactsHandler struct {
	registry      *contacts.Registry
	metrics       *metrics.Recorder
	accountID     string
	defaultRegion string
	logger        *slog.Logger
	operations    map[string]operation
}

// NewContactsHandler creates the API handler backed by registry. recorder
// may be nil.
func NewContactsHandler(log *slog.Logger, cfg config.Config, registry *contacts.Registry, recorder *metrics.Recorder) *ContactsHandler {
	h := &ContactsHandler{
		registry:      registry,
		metrics:       recorder,
		accountID:     cfg.Emulator.AccountID,
		defaultRegion: cfg.Emulator.DefaultRegion,
		logger:        log.With(slog.String("handler", "contacts")),
	}
	h.operations = map[string]operation{
		"CreateContact":        h.createContact,
		"CreateContactChannel": h.createContactChannel,
		"GetContact":           h.getContact,
		"GetContactChannel":    h.getContactChannel,
		"UpdateContact":        h.updateContact,
		"UpdateContactChannel": h.updateContactChannel,
		"DeleteContact":        h.deleteContact,
		"DeleteContactChannel": h.deleteContactChannel,
		"ListContacts":         h.listContacts,
		"ListContactChannels":  h.listContactChannels,
		"ListTagsForResource":  h.listTagsForResource,
		"TagResource":          h.tagResource,
		"UntagResource":        h.untagResource,
	}
	return h
}

// Register mounts POST / on the Echo instance.
func (h *ContactsHandler) Register(e *echo.Echo) {
	e.POST("/", h.Dispatch)
}

// Dispatch runs the operation named by X-Amz-Target against the backend of
// the caller's region.
func (h *ContactsHandler) Dispatch(c echo.Context) error {
	started := time.Now()
	name := operationName(c.Request().Header.Get("X-Amz-Target"))
	op, ok := h.operations[name]
	if !ok {
		h.metrics.Observe(unknownOperation, metrics.OutcomeRejected, started)
		return writeError(c, h.logger, &adapterError{
			status: http.StatusBadRequest,
			code:   codeUnknownOperation,
			msg:    fmt.Sprintf("unknown operation %q", name),
		})
	}
	log := logger.FromContextOr(c.Request().Context(), h.logger).With(slog.String("operation", name))
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.metrics.Observe(name, metrics.OutcomeFailed, started)
		return writeError(c, log, err)
	}
	backend := h.registry.Backend(h.accountID, h.region(c.Request()))
	result, err := op(backend, body)
	if err != nil {
		h.metrics.Observe(name, outcomeOf(err), started)
		return writeError(c, log, err)
	}
	h.metrics.Observe(name, metrics.OutcomeOK, started)
	return writeJSON(c, http.StatusOK, result)
}

func (h *ContactsHandler) region(r *http.Request) string {
	if m := credentialScope.FindStringSubmatch(r.Header.Get("Authorization")); m != nil {
		return m[1]
	}
	return h.defaultRegion
}

// operationName accepts "SSMContacts.ListContacts" as well as values that
// carry extra prefixes before the service name.
func operationName(target string) string {
	target = strings.TrimSpace(target)
	if idx := strings.LastIndex(target, "."); idx >= 0 {
		return target[idx+1:]
	}
	return target
}

func decode[T any](body []byte) (T, error) {
	var v T
	if len(strings.TrimSpace(string(body))) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, &adapterError{status: http.StatusBadRequest, code: codeSerialization, msg: err.Error()}
	}
	return v, nil
}

type contactIDRequest struct {
	ContactID string `json:"ContactId"`
}

type channelIDRequest struct {
	ContactChannelID string `json:"ContactChannelId"`
}

type resourceRequest struct {
	ResourceARN string         `json:"ResourceARN"`
	Tags        []contacts.Tag `json:"Tags,omitempty"`
	TagKeys     []string       `json:"TagKeys,omitempty"`
}

type empty struct{}

func (h *ContactsHandler) createContact(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[contacts.CreateContactInput](body)
	if err != nil {
		return nil, err
	}
	arn, err := b.CreateContact(req)
	if err != nil {
		return nil, err
	}
	return map[string]string{"ContactArn": arn}, nil
}

func (h *ContactsHandler) createContactChannel(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[contacts.CreateChannelInput](body)
	if err != nil {
		return nil, err
	}
	arn, err := b.CreateContactChannel(req)
	if err != nil {
		return nil, err
	}
	return map[string]string{"ContactChannelArn": arn}, nil
}

func (h *ContactsHandler) getContact(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[contactIDRequest](body)
	if err != nil {
		return nil, err
	}
	return b.GetContact(req.ContactID)
}

func (h *ContactsHandler) getContactChannel(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[channelIDRequest](body)
	if err != nil {
		return nil, err
	}
	return b.GetContactChannel(req.ContactChannelID)
}

func (h *ContactsHandler) updateContact(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[contacts.UpdateContactInput](body)
	if err != nil {
		return nil, err
	}
	if err := b.UpdateContact(req); err != nil {
		return nil, err
	}
	return empty{}, nil
}

func (h *ContactsHandler) updateContactChannel(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[contacts.UpdateChannelInput](body)
	if err != nil {
		return nil, err
	}
	if err := b.UpdateContactChannel(req); err != nil {
		return nil, err
	}
	return empty{}, nil
}

func (h *ContactsHandler) deleteContact(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[contactIDRequest](body)
	if err != nil {
		return nil, err
	}
	b.DeleteContact(req.ContactID)
	return empty{}, nil
}

func (h *ContactsHandler) deleteContactChannel(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[channelIDRequest](body)
	if err != nil {
		return nil, err
	}
	b.DeleteContactChannel(req.ContactChannelID)
	return empty{}, nil
}

func (h *ContactsHandler) listContacts(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[contacts.ListContactsInput](body)
	if err != nil {
		return nil, err
	}
	return b.ListContacts(req)
}

func (h *ContactsHandler) listContactChannels(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[contacts.ListChannelsInput](body)
	if err != nil {
		return nil, err
	}
	return b.ListContactChannels(req)
}

func (h *ContactsHandler) listTagsForResource(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[resourceRequest](body)
	if err != nil {
		return nil, err
	}
	tags, err := b.ListTagsForResource(req.ResourceARN)
	if err != nil {
		return nil, err
	}
	return map[string][]contacts.Tag{"Tags": tags}, nil
}

func (h *ContactsHandler) tagResource(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[resourceRequest](body)
	if err != nil {
		return nil, err
	}
	if err := b.TagResource(req.ResourceARN, req.Tags); err != nil {
		return nil, err
	}
	return empty{}, nil
}

func (h *ContactsHandler) untagResource(b *contacts.Backend, body []byte) (any, error) {
	req, err := decode[resourceRequest](body)
	if err != nil {
		return nil, err
	}
	if err := b.UntagResource(req.ResourceARN, req.TagKeys); err != nil {
		return nil, err
	}
	return empty{}, nil
}
