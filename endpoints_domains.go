package namecheap

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CreateOptions configures a domain registration. Admin, Tech and AuxBilling
// default to the registrant.
type CreateOptions struct {
	Years       int // default 1
	Registrant  *Contact
	Admin       *Contact
	Tech        *Contact
	AuxBilling  *Contact
	Nameservers []string // optional custom nameservers
}

// DomainsCreate registers a domain (namecheap.domains.create).
func (c *Client) DomainsCreate(ctx context.Context, domainName string, opts CreateOptions) (*DomainCreateResult, error) {
	if opts.Registrant == nil {
		return nil, ErrMissingRegistrant
	}
	years := opts.Years
	if years <= 0 {
		years = 1
	}

	params := url.Values{
		"DomainName": {domainName},
		"Years":      {strconv.Itoa(years)},
	}
	contacts := []struct {
		role    string
		contact *Contact
	}{
		{RoleRegistrant, opts.Registrant},
		{RoleAdmin, orContact(opts.Admin, opts.Registrant)},
		{RoleTech, orContact(opts.Tech, opts.Registrant)},
		{RoleAuxBilling, orContact(opts.AuxBilling, opts.Registrant)},
	}
	for _, rc := range contacts {
		if err := rc.contact.Validate(); err != nil {
			return nil, errors.WithMessage(err, strings.ToLower(rc.role)+" contact")
		}
		for k, vs := range rc.contact.Params(rc.role) {
			params[k] = vs
		}
	}
	if ns := joinNameservers(opts.Nameservers); ns != "" {
		params.Set("Nameservers", ns)
	}

	var out domainCreateResponse
	if err := c.call(ctx, CommandDomainsCreate, params, &out); err != nil {
		return nil, err
	}
	return &out.Result, nil
}

func orContact(c, fallback *Contact) *Contact {
	if c != nil {
		return c
	}
	return fallback
}

// DomainList is a page of registered domains.
type DomainList struct {
	Domains []*Domain `json:"domains"`
	Paging  Paging    `json:"paging"`
}

// DomainsGetList lists the account's domains (namecheap.domains.getList).
func (c *Client) DomainsGetList(ctx context.Context, opts ListOptions) (*DomainList, error) {
	params, err := opts.params()
	if err != nil {
		return nil, err
	}

	var out domainGetListResponse
	if err := c.call(ctx, CommandDomainsGetList, params, &out); err != nil {
		return nil, err
	}

	list := &DomainList{
		Domains: make([]*Domain, 0, len(out.Result.Domains)),
		Paging:  out.Paging,
	}
	for _, x := range out.Result.Domains {
		d, err := x.domain(c)
		if err != nil {
			return nil, errors.WithMessage(err, CommandDomainsGetList)
		}
		list.Domains = append(list.Domains, d)
	}
	return list, nil
}

// DomainsCheck reports whether domains are available (namecheap.domains.check).
func (c *Client) DomainsCheck(ctx context.Context, domainNames ...string) ([]DomainCheckResult, error) {
	names := make([]string, 0, len(domainNames))
	for _, n := range domainNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoDomains
	}

	var out domainCheckResponse
	params := url.Values{"DomainList": {strings.Join(names, ",")}}
	if err := c.call(ctx, CommandDomainsCheck, params, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
