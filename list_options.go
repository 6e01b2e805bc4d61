package namecheap

import (
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

var listTypes = map[string]string{
	"all":      "ALL",
	"expiring": "EXPIRING",
	"expired":  "EXPIRED",
}

var sortTypes = map[string]string{
	"name":         "NAME",
	"-name":        "NAME_DESC",
	"expire_date":  "EXPIREDATE",
	"-expire_date": "EXPIREDATE_DESC",
	"create_date":  "CREATEDATE",
	"-create_date": "CREATEDATE_DESC",
}

// ListOptions are the paging and filter parameters shared by list commands.
// Zero values select the defaults. ListType and SortBy are matched exactly.
type ListOptions struct {
	ListType   string // "all" (default), "expiring" or "expired"
	SortBy     string // "name" (default), "expire_date" or "create_date"; a leading "-" reverses
	Page       int    // default 1
	PageSize   int    // default 10
	SearchTerm string
}

func (o ListOptions) params() (url.Values, error) {
	lt := o.ListType
	if lt == "" {
		lt = "all"
	}
	listType, ok := listTypes[lt]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidListType, "%q", o.ListType)
	}

	sb := o.SortBy
	if sb == "" {
		sb = "name"
	}
	sortBy, ok := sortTypes[sb]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidSortBy, "%q", o.SortBy)
	}

	page, pageSize := o.Page, o.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	v := url.Values{
		"ListType": {listType},
		"SortBy":   {sortBy},
		"Page":     {strconv.Itoa(page)},
		"PageSize": {strconv.Itoa(pageSize)},
	}
	if o.SearchTerm != "" {
		v.Set("SearchTerm", o.SearchTerm)
	}
	return v, nil
}
