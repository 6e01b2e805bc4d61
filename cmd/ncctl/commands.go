package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/datum-labs/namecheap"
)

// ---- domains ---------------------------------------------------------------

func cmdDomains(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List, register and check domains",
	}
	cmd.AddCommand(cmdDomainsList(c), cmdDomainsCreate(c), cmdDomainsCheck(c))
	return cmd
}

func cmdDomainsList(c *cli) *cobra.Command {
	var opts namecheap.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the account's domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.client.DomainsGetList(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), list, func(w io.Writer) {
				tw := newTable(w, "NAME", "EXPIRES", "EXPIRED", "LOCKED", "AUTORENEW", "OUR DNS")
				for _, d := range list.Domains {
					fmt.Fprintf(tw, "%s\t%s\t%t\t%t\t%t\t%t\n",
						d.Name, formatDate(d.Expires), d.IsExpired, d.IsLocked, d.AutoRenew, d.IsOurDNS)
				}
				_ = tw.Flush()
				printPaging(w, list.Paging)
			})
		},
	}
	addListFlags(cmd, &opts)
	return cmd
}

func cmdDomainsCreate(c *cli) *cobra.Command {
	var (
		years                   int
		registrant              string
		admin, tech, auxBilling string
		nameservers             []string
	)
	cmd := &cobra.Command{
		Use:   "create <domain>",
		Short: "Register a domain using contacts from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := namecheap.CreateOptions{Years: years, Nameservers: nameservers}
			var err error
			if opts.Registrant, err = c.cfg.Contact(registrant); err != nil {
				return err
			}
			for _, role := range []struct {
				name string
				dst  **namecheap.Contact
			}{
				{admin, &opts.Admin},
				{tech, &opts.Tech},
				{auxBilling, &opts.AuxBilling},
			} {
				if role.name == "" {
					continue
				}
				if *role.dst, err = c.cfg.Contact(role.name); err != nil {
					return err
				}
			}

			res, err := c.client.DomainsCreate(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "domain:      %s\n", res.Domain)
				fmt.Fprintf(w, "registered:  %t\n", res.Registered)
				fmt.Fprintf(w, "charged:     %.2f\n", res.ChargedAmount)
				fmt.Fprintf(w, "domain id:   %d\n", res.DomainID)
				fmt.Fprintf(w, "order id:    %d\n", res.OrderID)
				fmt.Fprintf(w, "transaction: %d\n", res.TransactionID)
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&years, "years", 1, "registration period in years")
	f.StringVar(&registrant, "registrant", "default", "config contact used as registrant")
	f.StringVar(&admin, "admin", "", "config contact used as admin (default: registrant)")
	f.StringVar(&tech, "tech", "", "config contact used as tech (default: registrant)")
	f.StringVar(&auxBilling, "aux-billing", "", "config contact used as billing (default: registrant)")
	f.StringSliceVar(&nameservers, "nameservers", nil, "custom nameservers, comma separated")
	return cmd
}

func cmdDomainsCheck(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check <domain> [domain...]",
		Short: "Check domain availability",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.client.DomainsCheck(cmd.Context(), args...)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), res, func(w io.Writer) {
				tw := newTable(w, "DOMAIN", "AVAILABLE", "PREMIUM")
				for _, r := range res {
					fmt.Fprintf(tw, "%s\t%t\t%t\n", r.Domain, r.Available, r.IsPremiumName)
				}
				_ = tw.Flush()
			})
		},
	}
}

// ---- dns -------------------------------------------------------------------

func cmdDNS(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Manage nameserver delegation",
	}
	cmd.AddCommand(cmdDNSSetCustom(c), cmdDNSList(c))
	return cmd
}

func cmdDNSSetCustom(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "set-custom <domain> <nameserver> [nameserver...]",
		Short: "Point a domain at custom nameservers",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sld, tld, err := namecheap.SplitDomain(args[0])
			if err != nil {
				return err
			}
			res, err := c.client.DomainsDNSSetCustom(cmd.Context(), sld, tld, args[1:])
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "%s updated=%t\n", res.Domain, res.Updated)
			})
		},
	}
}

func cmdDNSList(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list <domain>",
		Short: "Show the nameservers a domain delegates to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sld, tld, err := namecheap.SplitDomain(args[0])
			if err != nil {
				return err
			}
			res, err := c.client.DomainsDNSGetList(cmd.Context(), sld, tld)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "%s (namecheap dns: %t)\n", res.Domain, res.IsUsingOurDNS)
				for _, ns := range res.Nameservers {
					fmt.Fprintf(w, "  - %s\n", ns)
				}
			})
		},
	}
}

// ---- ssl -------------------------------------------------------------------

func cmdSSL(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssl",
		Short: "Order and list SSL certificates",
	}
	cmd.AddCommand(cmdSSLCreate(c), cmdSSLList(c))
	return cmd
}

func cmdSSLCreate(c *cli) *cobra.Command {
	var years int
	cmd := &cobra.Command{
		Use:   "create <type>",
		Short: "Order an SSL certificate",
		Long:  "Order an SSL certificate. Known types:\n  " + strings.Join(namecheap.SSLTypes, "\n  "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.client.SSLCreate(cmd.Context(), args[0], years)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "order %d (transaction %d) success=%t charged=%.2f\n",
					res.OrderID, res.TransactionID, res.IsSuccess, res.ChargedAmount)
				for _, cert := range res.Certificates {
					fmt.Fprintf(w, "  - certificate %d %s %dy %s\n", cert.CertificateID, cert.SSLType, cert.Years, cert.Status)
				}
			})
		},
	}
	cmd.Flags().IntVar(&years, "years", 1, "certificate validity in years")
	return cmd
}

func cmdSSLList(c *cli) *cobra.Command {
	var opts namecheap.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the account's SSL certificates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.client.SSLGetList(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), list, func(w io.Writer) {
				tw := newTable(w, "ID", "HOST", "TYPE", "EXPIRES", "STATUS")
				for _, cert := range list.Certificates {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
						cert.CertificateID, cert.HostName, cert.SSLType, formatDate(cert.ExpireDate), cert.Status)
				}
				_ = tw.Flush()
				printPaging(w, list.Paging)
			})
		},
	}
	addListFlags(cmd, &opts)
	return cmd
}

// ---- client-ip -------------------------------------------------------------

func cmdClientIP(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "client-ip",
		Short: "Print the IP address sent as ClientIp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ip, err := c.client.ClientIP(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), map[string]string{"client_ip": ip}, func(w io.Writer) {
				fmt.Fprintln(w, ip)
			})
		},
	}
}

// ---- Rendering -------------------------------------------------------------

func addListFlags(cmd *cobra.Command, opts *namecheap.ListOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.ListType, "type", "all", "list type: all, expiring, expired")
	f.StringVar(&opts.SortBy, "sort", "name", "sort: name, expire_date, create_date; prefix with - to reverse")
	f.IntVar(&opts.Page, "page", 1, "page number")
	f.IntVar(&opts.PageSize, "page-size", 10, "items per page")
	f.StringVar(&opts.SearchTerm, "search", "", "filter by keyword")
}

// render writes v as JSON, or calls text when --json=false.
func (c *cli) render(w io.Writer, v any, text func(io.Writer)) error {
	if c.jsonOut {
		return printJSON(w, v)
	}
	text(w)
	return nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func printPaging(w io.Writer, p namecheap.Paging) {
	fmt.Fprintf(w, "\npage %d (size %d), %d total\n", p.CurrentPage, p.PageSize, p.TotalItems)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}
