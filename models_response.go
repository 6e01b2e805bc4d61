package namecheap

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Command names.
const (
	CommandDomainsCreate       = "namecheap.domains.create"
	CommandDomainsGetList      = "namecheap.domains.getList"
	CommandDomainsCheck        = "namecheap.domains.check"
	CommandDomainsDNSSetCustom = "namecheap.domains.dns.setCustom"
	CommandDomainsDNSGetList   = "namecheap.domains.dns.getList"
	CommandSSLCreate           = "namecheap.ssl.create"
	CommandSSLGetList          = "namecheap.ssl.getList"
)

// apiDateLayout is the MM/DD/YYYY format used by list results.
const apiDateLayout = "01/02/2006"

// Paging echoes the page parameters of a list command.
type Paging struct {
	TotalItems  int `xml:"TotalItems" json:"total_items"`
	CurrentPage int `xml:"CurrentPage" json:"current_page"`
	PageSize    int `xml:"PageSize" json:"page_size"`
}

// DomainCreateResult is the outcome of namecheap.domains.create.
type DomainCreateResult struct {
	Domain            string  `xml:"Domain,attr" json:"domain"`
	Registered        bool    `xml:"Registered,attr" json:"registered"`
	ChargedAmount     float64 `xml:"ChargedAmount,attr" json:"charged_amount"`
	DomainID          int     `xml:"DomainID,attr" json:"domain_id"`
	OrderID           int     `xml:"OrderID,attr" json:"order_id"`
	TransactionID     int     `xml:"TransactionID,attr" json:"transaction_id"`
	WhoisguardEnable  bool    `xml:"WhoisguardEnable,attr" json:"whoisguard_enable"`
	NonRealTimeDomain bool    `xml:"NonRealTimeDomain,attr" json:"non_real_time_domain"`
}

// DomainCheckResult reports the availability of one domain.
type DomainCheckResult struct {
	Domain                   string  `xml:"Domain,attr" json:"domain"`
	Available                bool    `xml:"Available,attr" json:"available"`
	ErrorNo                  int     `xml:"ErrorNo,attr" json:"error_no,omitempty"`
	Description              string  `xml:"Description,attr" json:"description,omitempty"`
	IsPremiumName            bool    `xml:"IsPremiumName,attr" json:"is_premium_name"`
	PremiumRegistrationPrice float64 `xml:"PremiumRegistrationPrice,attr" json:"premium_registration_price,omitempty"`
}

// DNSSetCustomResult is the outcome of namecheap.domains.dns.setCustom.
type DNSSetCustomResult struct {
	Domain  string `json:"domain"`
	Updated bool   `json:"updated"`
}

// DNSListResult lists the nameservers a domain delegates to.
type DNSListResult struct {
	Domain        string   `xml:"Domain,attr" json:"domain"`
	IsUsingOurDNS bool     `xml:"IsUsingOurDNS,attr" json:"is_using_our_dns"`
	Nameservers   []string `xml:"Nameserver" json:"nameservers"`
}

// SSLCreateResult is the outcome of namecheap.ssl.create.
type SSLCreateResult struct {
	IsSuccess     bool                  `xml:"IsSuccess,attr" json:"is_success"`
	OrderID       int                   `xml:"OrderId,attr" json:"order_id"`
	TransactionID int                   `xml:"TransactionId,attr" json:"transaction_id"`
	ChargedAmount float64               `xml:"ChargedAmount,attr" json:"charged_amount"`
	Certificates  []SSLOrderCertificate `xml:"SSLCertificate" json:"certificates"`
}

// SSLOrderCertificate is a certificate created by an SSL order.
type SSLOrderCertificate struct {
	CertificateID int    `xml:"CertificateID,attr" json:"certificate_id"`
	Created       string `xml:"Created,attr" json:"created"`
	SSLType       string `xml:"SSLType,attr" json:"ssl_type"`
	Years         int    `xml:"Years,attr" json:"years"`
	Status        string `xml:"Status,attr" json:"status"`
}

// SSLCertificate is one entry of namecheap.ssl.getList.
type SSLCertificate struct {
	CertificateID        int       `json:"certificate_id"`
	HostName             string    `json:"host_name,omitempty"`
	SSLType              string    `json:"ssl_type"`
	PurchaseDate         time.Time `json:"purchase_date"`
	ExpireDate           time.Time `json:"expire_date"`
	ActivationExpireDate time.Time `json:"activation_expire_date"`
	IsExpired            bool      `json:"is_expired"`
	Status               string    `json:"status"`
}

// SSLList is a page of SSL certificates.
type SSLList struct {
	Certificates []SSLCertificate `json:"certificates"`
	Paging       Paging           `json:"paging"`
}

// ---- wire shapes --------------------------------------------------------

type domainGetListResponse struct {
	Result struct {
		Domains []domainXML `xml:"Domain"`
	} `xml:"DomainGetListResult"`
	Paging Paging `xml:"Paging"`
}

type domainCreateResponse struct {
	Result DomainCreateResult `xml:"DomainCreateResult"`
}

type domainCheckResponse struct {
	Results []DomainCheckResult `xml:"DomainCheckResult"`
}

type dnsSetCustomResponse struct {
	Result struct {
		Domain  string `xml:"Domain,attr"`
		Updated string `xml:"Updated,attr"`
		Update  string `xml:"Update,attr"`
	} `xml:"DomainDNSSetCustomResult"`
}

type dnsGetListResponse struct {
	Result DNSListResult `xml:"DomainDNSGetListResult"`
}

type sslCreateResponse struct {
	Result SSLCreateResult `xml:"SSLCreateResult"`
}

type sslGetListResponse struct {
	Result struct {
		Certificates []sslXML `xml:"SSL"`
	} `xml:"SSLListResult"`
	Paging Paging `xml:"Paging"`
}

type sslXML struct {
	CertificateID        string `xml:"CertificateID,attr"`
	HostName             string `xml:"HostName,attr"`
	SSLType              string `xml:"SSLType,attr"`
	PurchaseDate         string `xml:"PurchaseDate,attr"`
	ExpireDate           string `xml:"ExpireDate,attr"`
	ActivationExpireDate string `xml:"ActivationExpireDate,attr"`
	IsExpiredYN          string `xml:"IsExpiredYN,attr"`
	Status               string `xml:"Status,attr"`
}

func (s sslXML) certificate() (SSLCertificate, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s.CertificateID))
	if err != nil {
		return SSLCertificate{}, errors.Wrapf(err, "SSL CertificateID %q", s.CertificateID)
	}
	cert := SSLCertificate{
		CertificateID: id,
		HostName:      s.HostName,
		SSLType:       s.SSLType,
		IsExpired:     xmlBool(s.IsExpiredYN),
		Status:        s.Status,
	}
	if cert.PurchaseDate, err = parseAPIDate(s.PurchaseDate); err != nil {
		return SSLCertificate{}, err
	}
	if cert.ExpireDate, err = parseAPIDate(s.ExpireDate); err != nil {
		return SSLCertificate{}, err
	}
	if cert.ActivationExpireDate, err = parseAPIDate(s.ActivationExpireDate); err != nil {
		return SSLCertificate{}, err
	}
	return cert, nil
}

// parseAPIDate parses MM/DD/YYYY; an empty value is the zero time.
func parseAPIDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(apiDateLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "date %q", s)
	}
	return t, nil
}
