package namecheap

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/pkg/errors"
)

// apiResponse is the envelope every command returns.
type apiResponse struct {
	XMLName           xml.Name        `xml:"ApiResponse"`
	Status            string          `xml:"Status,attr"`
	Errors            []APIError      `xml:"Errors>Error"`
	Warnings          []APIError      `xml:"Warnings>Warning"`
	RequestedCommand  string          `xml:"RequestedCommand"`
	CommandResponse   commandResponse `xml:"CommandResponse"`
	Server            string          `xml:"Server"`
	GMTTimeDifference string          `xml:"GMTTimeDifference"`
	ExecutionTime     float64         `xml:"ExecutionTime"`
}

type commandResponse struct {
	Type  string `xml:"Type,attr"`
	Inner []byte `xml:",innerxml"`
}

// parseResponse decodes the ApiResponse envelope.
func parseResponse(body []byte) (*apiResponse, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty API response")
	}
	var env apiResponse
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, "decoding ApiResponse")
	}
	return &env, nil
}

// err surfaces the remote failure, if any.
func (r *apiResponse) err() error {
	if len(r.Errors) > 0 {
		return APIErrors(r.Errors)
	}
	if strings.EqualFold(r.Status, "ERROR") {
		return APIErrors{}
	}
	return nil
}

// decodeCommand decodes the children of <CommandResponse> into out. The
// inner XML is re-wrapped so result types can name several siblings
// (e.g. a result element plus <Paging>).
func (r *apiResponse) decodeCommand(out any) error {
	if out == nil {
		return nil
	}
	var buf bytes.Buffer
	buf.Grow(len(r.CommandResponse.Inner) + 40)
	buf.WriteString("<CommandResponse>")
	buf.Write(r.CommandResponse.Inner)
	buf.WriteString("</CommandResponse>")
	if err := xml.Unmarshal(buf.Bytes(), out); err != nil {
		return errors.Wrapf(err, "decoding %s response", r.CommandResponse.Type)
	}
	return nil
}
