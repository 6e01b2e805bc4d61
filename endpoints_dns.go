package namecheap

import (
	"context"
	"net/url"
)

// DomainsDNSSetCustom points sld.tld at custom nameservers
// (namecheap.domains.dns.setCustom). The API verifies that the nameservers
// exist and fails otherwise.
func (c *Client) DomainsDNSSetCustom(ctx context.Context, sld, tld string, nameservers []string) (*DNSSetCustomResult, error) {
	ns := joinNameservers(nameservers)
	if ns == "" {
		return nil, ErrNoNameservers
	}
	params := url.Values{
		"SLD":         {sld},
		"TLD":         {tld},
		"Nameservers": {ns},
	}

	var out dnsSetCustomResponse
	if err := c.call(ctx, CommandDomainsDNSSetCustom, params, &out); err != nil {
		return nil, err
	}
	return &DNSSetCustomResult{
		Domain:  out.Result.Domain,
		Updated: xmlBool(out.Result.Updated) || xmlBool(out.Result.Update),
	}, nil
}

// DomainsDNSGetList returns the nameservers sld.tld delegates to
// (namecheap.domains.dns.getList).
func (c *Client) DomainsDNSGetList(ctx context.Context, sld, tld string) (*DNSListResult, error) {
	params := url.Values{
		"SLD": {sld},
		"TLD": {tld},
	}

	var out dnsGetListResponse
	if err := c.call(ctx, CommandDomainsDNSGetList, params, &out); err != nil {
		return nil, err
	}
	return &out.Result, nil
}
