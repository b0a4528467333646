package contacts_test

import (
	"testing"

	"github.com/memohai/ssmcontacts/internal/contacts"
)

func TestRegistry_BackendPerAccountAndRegion(t *testing.T) {
	t.Parallel()
	reg := contacts.NewRegistry(nil)

	east := reg.Backend("123456789012", "us-east-1")
	if again := reg.Backend("123456789012", "us-east-1"); again != east {
		t.Fatalf("Backend() returned a new instance for the same key")
	}
	west := reg.Backend("123456789012", "us-west-2")
	other := reg.Backend("210987654321", "us-east-1")
	if west == east || other == east {
		t.Fatalf("Backend() shared an instance across keys")
	}
	if got := reg.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if east.Region() != "us-east-1" || other.AccountID() != "210987654321" {
		t.Fatalf("backend scope = (%s, %s), want (us-east-1, 210987654321)", east.Region(), other.AccountID())
	}
}

func TestRegistry_ScopesAreIsolated(t *testing.T) {
	t.Parallel()
	reg := contacts.NewRegistry(nil)
	in := contacts.CreateContactInput{Alias: "tuser", Type: contacts.ContactTypePersonal}

	eastARN, err := reg.Backend("123456789012", "us-east-1").CreateContact(in)
	if err != nil {
		t.Fatalf("CreateContact(us-east-1) = %v", err)
	}
	if _, err := reg.Backend("123456789012", "us-west-2").CreateContact(in); err != nil {
		t.Fatalf("same alias in another region should not conflict: %v", err)
	}
	if _, err := reg.Backend("123456789012", "us-west-2").GetContact(eastARN); err == nil {
		t.Fatalf("GetContact found a contact from another region")
	}
}

func TestRegistry_Reset(t *testing.T) {
	t.Parallel()
	reg := contacts.NewRegistry(nil)
	arn, err := reg.Backend("123456789012", "us-east-1").CreateContact(contacts.CreateContactInput{Alias: "tuser", Type: contacts.ContactTypePersonal})
	if err != nil {
		t.Fatalf("CreateContact() = %v", err)
	}
	reg.Reset()
	if got := reg.Len(); got != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", got)
	}
	if _, err := reg.Backend("123456789012", "us-east-1").GetContact(arn); err == nil {
		t.Fatalf("contact survived Reset")
	}
}
