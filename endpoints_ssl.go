package namecheap

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SSLTypes lists the certificate types namecheap.ssl.create accepts.
var SSLTypes = []string{
	"QuickSSL",
	"QuickSSL Premium",
	"RapidSSL",
	"RapidSSL Wildcard",
	"PremiumSSL",
	"InstantSSL",
	"PositiveSSL",
	"PositiveSSL Wildcard",
	"True BusinessID with EV",
	"True BusinessID",
	"True BusinessID Wildcard",
	"Secure Site",
	"Secure Site Pro",
	"Secure Site with EV",
	"Secure Site Pro with EV",
	"EssentialSSL",
	"EssentialSSL Wildcard",
	"InstantSSL Pro",
	"Premiumssl wildcard",
	"EV SSL",
	"EV SSL SGC",
	"SSL123",
	"SSL Web Server",
	"SGC Super Certs",
	"SSL Webserver EV",
}

// ValidSSLType reports whether t is a known certificate type. The match is
// exact apart from surrounding whitespace.
func ValidSSLType(t string) bool {
	t = strings.TrimSpace(t)
	for _, known := range SSLTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SSLCreate orders an SSL certificate (namecheap.ssl.create). Years defaults to 1.
func (c *Client) SSLCreate(ctx context.Context, sslType string, years int) (*SSLCreateResult, error) {
	if !ValidSSLType(sslType) {
		return nil, errors.Wrapf(ErrInvalidSSLType, "%q", sslType)
	}
	if years <= 0 {
		years = 1
	}
	params := url.Values{
		"Type":  {strings.TrimSpace(sslType)},
		"Years": {strconv.Itoa(years)},
	}

	var out sslCreateResponse
	if err := c.call(ctx, CommandSSLCreate, params, &out); err != nil {
		return nil, err
	}
	return &out.Result, nil
}

// SSLGetList lists the account's SSL certificates (namecheap.ssl.getList).
func (c *Client) SSLGetList(ctx context.Context, opts ListOptions) (*SSLList, error) {
	params, err := opts.params()
	if err != nil {
		return nil, err
	}

	var out sslGetListResponse
	if err := c.call(ctx, CommandSSLGetList, params, &out); err != nil {
		return nil, err
	}

	list := &SSLList{
		Certificates: make([]SSLCertificate, 0, len(out.Result.Certificates)),
		Paging:       out.Paging,
	}
	for _, x := range out.Result.Certificates {
		cert, err := x.certificate()
		if err != nil {
			return nil, errors.WithMessage(err, CommandSSLGetList)
		}
		list.Certificates = append(list.Certificates, cert)
	}
	return list, nil
}
