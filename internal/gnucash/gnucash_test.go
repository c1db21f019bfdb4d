package gnucash

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bluebull7/pulsevector-sim/internal/model"
)

// fixtureXML returns a small book in the shape GnuCash writes: count-data
// entries, one commodity, a chart of three accounts, and a template root.
func fixtureXML() string {
	header := fmt.Sprintf(
		`<gnc-v2 xmlns:gnc=%q xmlns:act=%q xmlns:cmdty=%q xmlns:cd=%q xmlns:book="http://www.gnucash.org/XML/book">`,
		nsGnc, nsAct, nsCmdty, nsCd)
	return `<?xml version="1.0" encoding="utf-8" ?>` + "\n" + header + `
<gnc:count-data cd:type="book">1</gnc:count-data>
<gnc:book version="2.0.0">
<book:id type="guid">8c33f9112fa9436aa8414bcd7f561624</book:id>
<gnc:count-data cd:type="commodity">1</gnc:count-data>
<gnc:count-data cd:type="account">3</gnc:count-data>
<gnc:commodity version="2.0.0">
  <cmdty:space>CURRENCY</cmdty:space>
  <cmdty:id>USD</cmdty:id>
  <cmdty:get_quotes/>
  <cmdty:quote_source>currency</cmdty:quote_source>
  <cmdty:quote_tz/>
</gnc:commodity>
<gnc:account version="2.0.0">
  <act:name>Root Account</act:name>
  <act:id type="guid">a49c4d4bd44b406aa82c0092cc04d2d4</act:id>
  <act:type>ROOT</act:type>
  <act:commodity>
    <cmdty:space>CURRENCY</cmdty:space>
    <cmdty:id>USD</cmdty:id>
  </act:commodity>
  <act:commodity-scu>100</act:commodity-scu>
</gnc:account>
<gnc:account version="2.0.0">
  <act:name>Assets</act:name>
  <act:id type="guid">1d2a4c3f9f6b4de1a2b3c4d5e6f70809</act:id>
  <act:type>ASSET</act:type>
  <act:commodity>
    <cmdty:space>CURRENCY</cmdty:space>
    <cmdty:id>USD</cmdty:id>
  </act:commodity>
  <act:commodity-scu>100</act:commodity-scu>
  <act:description>All assets</act:description>
  <act:parent type="guid">a49c4d4bd44b406aa82c0092cc04d2d4</act:parent>
</gnc:account>
<gnc:account version="2.0.0">
  <act:name>Checking</act:name>
  <act:id type="guid">5f8e7d6c5b4a39281706f5e4d3c2b1a0</act:id>
  <act:type>BANK</act:type>
  <act:commodity>
    <cmdty:space>CURRENCY</cmdty:space>
    <cmdty:id>USD</cmdty:id>
  </act:commodity>
  <act:commodity-scu>100</act:commodity-scu>
  <act:code> 1010 </act:code>
  <act:parent type="guid">1d2a4c3f9f6b4de1a2b3c4d5e6f70809</act:parent>
</gnc:account>
<gnc:template-transactions>
<gnc:account version="2.0.0">
  <act:name>Template Root</act:name>
  <act:id type="guid">b3f8d1f27d1e4a828fd4b35df98e2f31</act:id>
  <act:type>ROOT</act:type>
</gnc:account>
</gnc:template-transactions>
</gnc:book>
</gnc-v2>
`
}

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(fixtureXML()))
	require.NoError(t, err)

	assert.Equal(t, "a49c4d4bd44b406aa82c0092cc04d2d4", doc.RootGUID)
	assert.Equal(t, "b3f8d1f27d1e4a828fd4b35df98e2f31", doc.TemplateRootGUID)
	assert.Len(t, doc.Accounts, 4, "template accounts are included")
	assert.Equal(t, 3, doc.Counts["account"])
	assert.Equal(t, 1, doc.Counts["book"])

	checking, ok := doc.Account("5f8e7d6c5b4a39281706f5e4d3c2b1a0")
	require.True(t, ok)
	assert.Equal(t, "Checking", checking.Name)
	assert.Equal(t, model.AccountTypeBank, checking.Type)
	assert.Equal(t, "1d2a4c3f9f6b4de1a2b3c4d5e6f70809", checking.ParentGUID)
	assert.Equal(t, "1010", checking.Code, "element text is trimmed")
	assert.Equal(t, "USD", checking.Currency())

	assets, ok := doc.Account("1d2a4c3f9f6b4de1a2b3c4d5e6f70809")
	require.True(t, ok)
	assert.Equal(t, "All assets", assets.Description)

	root, ok := doc.Account(doc.RootGUID)
	require.True(t, ok)
	assert.True(t, root.IsRoot())
	assert.Empty(t, root.ParentGUID)
}

func TestParse_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(fixtureXML()))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	doc, err := Parse(&buf)
	require.NoError(t, err)
	assert.Len(t, doc.Accounts, 4)
	assert.Equal(t, "a49c4d4bd44b406aa82c0092cc04d2d4", doc.RootGUID)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse(strings.NewReader("not xml at all"))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.gnucash")
	require.NoError(t, os.WriteFile(path, []byte(fixtureXML()), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Accounts, 4)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.gnucash"))
	assert.Error(t, err)
}

func TestDefaultCurrency(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		want string
	}{
		{"root with currency", docWithRoot(&model.Commodity{Space: "CURRENCY", ID: "GBP"}), "GBP"},
		{"root with security", docWithRoot(&model.Commodity{Space: "NASDAQ", ID: "AAPL"}), "EUR"},
		{"root without commodity", docWithRoot(nil), "EUR"},
		{"no root", &Document{byGUID: map[string]int{}}, "EUR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.DefaultCurrency("EUR"))
		})
	}
}

func docWithRoot(c *model.Commodity) *Document {
	d := &Document{Counts: map[string]int{}, byGUID: map[string]int{}}
	d.add(model.Account{
		GUID:      "3d6c5b4a3928170645f8e7d6f5e4d3c2",
		Name:      model.RootAccountName,
		Type:      model.AccountTypeRoot,
		Commodity: c,
	})
	return d
}
