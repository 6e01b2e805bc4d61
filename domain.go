package namecheap

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Domain is one entry of namecheap.domains.getList.
type Domain struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	User       string    `json:"user"`
	Created    time.Time `json:"created"`
	Expires    time.Time `json:"expires"`
	IsExpired  bool      `json:"is_expired"`
	IsLocked   bool      `json:"is_locked"`
	AutoRenew  bool      `json:"auto_renew"`
	WhoisGuard string    `json:"whois_guard"`
	IsPremium  bool      `json:"is_premium"`
	IsOurDNS   bool      `json:"is_our_dns"`

	client *Client
}

// SLD returns the second-level label, e.g. "example" for "example.co.uk".
func (d *Domain) SLD() string {
	sld, _ := d.split()
	return sld
}

// TLD returns the public suffix, e.g. "co.uk" for "example.co.uk".
func (d *Domain) TLD() string {
	_, tld := d.split()
	return tld
}

func (d *Domain) split() (string, string) {
	if sld, tld, err := SplitDomain(d.Name); err == nil {
		return sld, tld
	}
	// not a listed suffix: fall back to the first dot
	name := strings.ToLower(strings.TrimSuffix(d.Name, "."))
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

// SetNameservers points the domain at custom nameservers through the client
// that listed it.
func (d *Domain) SetNameservers(ctx context.Context, nameservers []string) (*DNSSetCustomResult, error) {
	if d.client == nil {
		return nil, errors.Errorf("domain %s is not bound to a client", d.Name)
	}
	return d.client.DomainsDNSSetCustom(ctx, d.SLD(), d.TLD(), nameservers)
}

// domainXML is the <Domain> element as sent on the wire.
type domainXML struct {
	ID         string `xml:"ID,attr"`
	Name       string `xml:"Name,attr"`
	User       string `xml:"User,attr"`
	Created    string `xml:"Created,attr"`
	Expires    string `xml:"Expires,attr"`
	IsExpired  string `xml:"IsExpired,attr"`
	IsLocked   string `xml:"IsLocked,attr"`
	AutoRenew  string `xml:"AutoRenew,attr"`
	WhoisGuard string `xml:"WhoisGuard,attr"`
	IsPremium  string `xml:"IsPremium,attr"`
	IsOurDNS   string `xml:"IsOurDNS,attr"`
}

func (x domainXML) domain(c *Client) (*Domain, error) {
	id, err := strconv.Atoi(strings.TrimSpace(x.ID))
	if err != nil {
		return nil, errors.Wrapf(err, "domain %s: ID %q", x.Name, x.ID)
	}
	created, err := parseAPIDate(x.Created)
	if err != nil {
		return nil, errors.WithMessagef(err, "domain %s: Created", x.Name)
	}
	expires, err := parseAPIDate(x.Expires)
	if err != nil {
		return nil, errors.WithMessagef(err, "domain %s: Expires", x.Name)
	}
	return &Domain{
		ID:         id,
		Name:       x.Name,
		User:       x.User,
		Created:    created,
		Expires:    expires,
		IsExpired:  xmlBool(x.IsExpired),
		IsLocked:   xmlBool(x.IsLocked),
		AutoRenew:  xmlBool(x.AutoRenew),
		WhoisGuard: x.WhoisGuard,
		IsPremium:  xmlBool(x.IsPremium),
		IsOurDNS:   xmlBool(x.IsOurDNS),
		client:     c,
	}, nil
}
