package gnucash

import (
	"strconv"
	"strings"

	"github.com/Bluebull7/pulsevector-sim/internal/model"
)

// GnuCash XML namespace URLs. encoding/xml matches qualified names
// against "<url> <local>" struct tags, so the URLs repeat literally in
// the tags below.
const (
	nsGnc   = "http://www.gnucash.org/XML/gnc"
	nsAct   = "http://www.gnucash.org/XML/act"
	nsCmdty = "http://www.gnucash.org/XML/cmdty"
	nsCd    = "http://www.gnucash.org/XML/cd"
)

// xmlDocument mirrors the <gnc-v2> wrapper element.
type xmlDocument struct {
	Counts []xmlCount `xml:"http://www.gnucash.org/XML/gnc count-data"`
	Books  []xmlBook  `xml:"http://www.gnucash.org/XML/gnc book"`
}

// xmlBook mirrors <gnc:book>. Template accounts live under
// <gnc:template-transactions>, after the chart of accounts.
type xmlBook struct {
	Counts    []xmlCount   `xml:"http://www.gnucash.org/XML/gnc count-data"`
	Accounts  []xmlAccount `xml:"http://www.gnucash.org/XML/gnc account"`
	Templates xmlTemplates `xml:"http://www.gnucash.org/XML/gnc template-transactions"`
}

type xmlTemplates struct {
	Accounts []xmlAccount `xml:"http://www.gnucash.org/XML/gnc account"`
}

// xmlCount mirrors <gnc:count-data cd:type="account">64</gnc:count-data>.
type xmlCount struct {
	Type  string `xml:"http://www.gnucash.org/XML/cd type,attr"`
	Value string `xml:",chardata"`
}

// value parses the element text, which GnuCash writes as a bare integer.
func (x xmlCount) value() (int, error) {
	return strconv.Atoi(strings.TrimSpace(x.Value))
}

type xmlAccount struct {
	ID          string        `xml:"http://www.gnucash.org/XML/act id"`
	Name        string        `xml:"http://www.gnucash.org/XML/act name"`
	Type        string        `xml:"http://www.gnucash.org/XML/act type"`
	Parent      string        `xml:"http://www.gnucash.org/XML/act parent"`
	Code        string        `xml:"http://www.gnucash.org/XML/act code"`
	Description string        `xml:"http://www.gnucash.org/XML/act description"`
	Commodity   *xmlCommodity `xml:"http://www.gnucash.org/XML/act commodity"`
}

type xmlCommodity struct {
	Space string `xml:"http://www.gnucash.org/XML/cmdty space"`
	ID    string `xml:"http://www.gnucash.org/XML/cmdty id"`
}

// toModel converts a raw record, trimming the whitespace GnuCash pads
// around element text.
func (x xmlAccount) toModel() model.Account {
	a := model.Account{
		GUID:        strings.TrimSpace(x.ID),
		Name:        strings.TrimSpace(x.Name),
		Type:        model.AccountType(strings.TrimSpace(x.Type)),
		ParentGUID:  strings.TrimSpace(x.Parent),
		Code:        strings.TrimSpace(x.Code),
		Description: strings.TrimSpace(x.Description),
	}
	if x.Commodity != nil {
		space := strings.TrimSpace(x.Commodity.Space)
		id := strings.TrimSpace(x.Commodity.ID)
		if space != "" || id != "" {
			a.Commodity = &model.Commodity{Space: space, ID: id}
		}
	}
	return a
}
