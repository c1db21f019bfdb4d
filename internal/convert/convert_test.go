package convert

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bluebull7/pulsevector-sim/internal/book"
	"github.com/Bluebull7/pulsevector-sim/internal/guid"
	"github.com/Bluebull7/pulsevector-sim/internal/model"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8" ?>
<gnc-v2 xmlns:gnc="http://www.gnucash.org/XML/gnc" xmlns:act="http://www.gnucash.org/XML/act" xmlns:cmdty="http://www.gnucash.org/XML/cmdty" xmlns:cd="http://www.gnucash.org/XML/cd">
<gnc:book version="2.0.0">
`

const xmlFooter = `</gnc:book>
</gnc-v2>
`

func accountXML(id, name, typ, parent string, c *model.Commodity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<gnc:account version=\"2.0.0\">\n")
	fmt.Fprintf(&b, "  <act:name>%s</act:name>\n", name)
	fmt.Fprintf(&b, "  <act:id type=\"guid\">%s</act:id>\n", id)
	fmt.Fprintf(&b, "  <act:type>%s</act:type>\n", typ)
	if c != nil {
		fmt.Fprintf(&b, "  <act:commodity><cmdty:space>%s</cmdty:space><cmdty:id>%s</cmdty:id></act:commodity>\n", c.Space, c.ID)
	}
	if parent != "" {
		fmt.Fprintf(&b, "  <act:parent type=\"guid\">%s</act:parent>\n", parent)
	}
	b.WriteString("</gnc:account>\n")
	return b.String()
}

func bookXML(body ...string) string {
	return xmlHeader + strings.Join(body, "") + xmlFooter
}

func writeSource(t *testing.T, xml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.gnucash")
	require.NoError(t, os.WriteFile(path, []byte(xml), 0o644))
	return path
}

func outPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "out.gnucash")
}

func quietOpts() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func accountsByName(t *testing.T, path string) map[string]book.StoredAccount {
	t.Helper()
	accounts, err := book.ReadAccounts(path)
	require.NoError(t, err)
	byName := make(map[string]book.StoredAccount, len(accounts))
	for _, a := range accounts {
		byName[a.Name] = a
	}
	return byName
}

func usd() *model.Commodity {
	return &model.Commodity{Space: "CURRENCY", ID: "USD"}
}

func TestRun_SmallTree(t *testing.T) {
	rootID, assetsID, bankID := guid.New(), guid.New(), guid.New()
	src := bookXML(
		accountXML(rootID, "Root Account", "ROOT", "", usd()),
		accountXML(assetsID, "Assets", "ASSET", rootID, nil),
		accountXML(bankID, "Bank", "BANK", assetsID, usd()),
	)
	out := outPath(t)

	res, err := Run(writeSource(t, src), out, quietOpts())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, "USD", res.DefaultCurrency)
	assert.False(t, res.Flattened)
	assert.Equal(t, out, res.OutputPath)

	byName := accountsByName(t, out)
	require.Len(t, byName, 4)

	root := byName[model.RootAccountName]
	assets := byName["Assets"]
	bank := byName["Bank"]
	assert.Equal(t, root.GUID, assets.ParentGUID)
	assert.Equal(t, assets.GUID, bank.ParentGUID)
	assert.Equal(t, "ASSET", assets.Type)
	assert.Equal(t, "BANK", bank.Type)
	assert.NotEqual(t, assetsID, assets.GUID, "destination rows get fresh GUIDs")

	commodities, err := book.ReadCommodities(out)
	require.NoError(t, err)
	var usdRows []book.StoredCommodity
	for _, c := range commodities {
		if c.Mnemonic == "USD" {
			usdRows = append(usdRows, c)
		}
	}
	require.Len(t, usdRows, 1, "one USD row serves the whole book")
	assert.Equal(t, usdRows[0].GUID, bank.CommodityGUID)
	assert.Equal(t, usdRows[0].GUID, root.CommodityGUID)
}

func TestRun_ParentMapping(t *testing.T) {
	rootID := guid.New()
	ids := map[string]string{
		"Assets":      guid.New(),
		"Cash":        guid.New(),
		"Checking":    guid.New(),
		"Liabilities": guid.New(),
		"Visa":        guid.New(),
	}
	parents := map[string]string{
		"Assets":      rootID,
		"Cash":        ids["Assets"],
		"Checking":    ids["Assets"],
		"Liabilities": rootID,
		"Visa":        ids["Liabilities"],
	}
	src := bookXML(
		accountXML(rootID, "Root Account", "ROOT", "", usd()),
		accountXML(ids["Assets"], "Assets", "ASSET", parents["Assets"], nil),
		accountXML(ids["Cash"], "Cash", "CASH", parents["Cash"], usd()),
		accountXML(ids["Checking"], "Checking", "BANK", parents["Checking"], usd()),
		accountXML(ids["Liabilities"], "Liabilities", "LIABILITY", parents["Liabilities"], nil),
		accountXML(ids["Visa"], "Visa", "CREDIT", parents["Visa"], usd()),
	)
	out := outPath(t)

	res, err := Run(writeSource(t, src), out, quietOpts())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Created)

	byName := accountsByName(t, out)
	nameByID := map[string]string{rootID: model.RootAccountName}
	for name, id := range ids {
		nameByID[id] = name
	}
	for name, srcParent := range parents {
		wantParent := byName[nameByID[srcParent]]
		assert.Equal(t, wantParent.GUID, byName[name].ParentGUID,
			"%s keeps its source parent %s", name, nameByID[srcParent])
	}
}

func TestRun_ChildrenInNameOrder(t *testing.T) {
	rootID := guid.New()
	src := bookXML(
		accountXML(rootID, "Root Account", "ROOT", "", usd()),
		accountXML(guid.New(), "Zebra", "EXPENSE", rootID, nil),
		accountXML(guid.New(), "alpha", "EXPENSE", rootID, nil),
		accountXML(guid.New(), "Apple", "EXPENSE", rootID, nil),
		accountXML(guid.New(), "Beta", "EXPENSE", rootID, nil),
	)
	out := outPath(t)

	_, err := Run(writeSource(t, src), out, quietOpts())
	require.NoError(t, err)

	accounts, err := book.ReadAccounts(out)
	require.NoError(t, err)
	require.Len(t, accounts, 6)

	var order []string
	for _, a := range accounts[2:] { // the two roots come first
		order = append(order, a.Name)
	}
	assert.Equal(t, []string{"Apple", "Beta", "Zebra", "alpha"}, order)
}

func TestRun_TemplateSubtreeSkipped(t *testing.T) {
	rootID, templateRootID := guid.New(), guid.New()
	src := xmlHeader +
		accountXML(rootID, "Root Account", "ROOT", "", usd()) +
		accountXML(guid.New(), "Assets", "ASSET", rootID, nil) +
		"<gnc:template-transactions>\n" +
		accountXML(templateRootID, "Template Root", "ROOT", "", nil) +
		accountXML(guid.New(), "Scheduled", "BANK", templateRootID, nil) +
		"</gnc:template-transactions>\n" +
		xmlFooter
	out := outPath(t)

	res, err := Run(writeSource(t, src), out, quietOpts())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	byName := accountsByName(t, out)
	assert.NotContains(t, byName, "Scheduled")
	assert.Contains(t, byName, model.TemplateRootName)
}

func TestRun_Flatten(t *testing.T) {
	src := bookXML(
		accountXML(guid.New(), "Gamma", "EXPENSE", guid.New(), nil),
		accountXML(guid.New(), "Alpha", "ASSET", "", usd()),
		accountXML(guid.New(), "Beta", "INCOME", guid.New(), nil),
	)
	out := outPath(t)

	res, err := Run(writeSource(t, src), out, quietOpts())
	require.NoError(t, err)
	assert.True(t, res.Flattened)
	assert.Equal(t, 3, res.Created)

	byName := accountsByName(t, out)
	root := byName[model.RootAccountName]
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		assert.Equal(t, root.GUID, byName[name].ParentGUID, "%s hangs off the new root", name)
	}
}

func TestRun_FlattenKeepsResolvableNesting(t *testing.T) {
	opsID := guid.New()
	src := bookXML(
		accountXML(opsID, "Ops", "EXPENSE", guid.New(), nil),
		accountXML(guid.New(), "Ops Travel", "EXPENSE", opsID, nil),
	)
	out := outPath(t)

	res, err := Run(writeSource(t, src), out, quietOpts())
	require.NoError(t, err)
	assert.True(t, res.Flattened)

	byName := accountsByName(t, out)
	assert.Equal(t, byName[model.RootAccountName].GUID, byName["Ops"].ParentGUID)
	assert.Equal(t, byName["Ops"].GUID, byName["Ops Travel"].ParentGUID,
		"children sorting after their parent keep their nesting")
}

func TestRun_FallbackCurrency(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		src := bookXML(accountXML(guid.New(), "Root Account", "ROOT", "", nil))
		out := outPath(t)

		res, err := Run(writeSource(t, src), out, quietOpts())
		require.NoError(t, err)
		assert.Equal(t, "EUR", res.DefaultCurrency)
	})

	t.Run("configured", func(t *testing.T) {
		src := bookXML(accountXML(guid.New(), "Root Account", "ROOT", "", nil))
		out := outPath(t)

		opts := quietOpts()
		opts.FallbackCurrency = "GBP"
		res, err := Run(writeSource(t, src), out, opts)
		require.NoError(t, err)
		assert.Equal(t, "GBP", res.DefaultCurrency)

		byName := accountsByName(t, out)
		commodities, err := book.ReadCommodities(out)
		require.NoError(t, err)
		var gbp book.StoredCommodity
		for _, c := range commodities {
			if c.Mnemonic == "GBP" {
				gbp = c
			}
		}
		assert.Equal(t, gbp.GUID, byName[model.RootAccountName].CommodityGUID)
	})
}

func TestRun_SkippedTransactions(t *testing.T) {
	rootID := guid.New()
	src := xmlHeader +
		"<gnc:count-data cd:type=\"account\">2</gnc:count-data>\n" +
		"<gnc:count-data cd:type=\"transaction\">7</gnc:count-data>\n" +
		accountXML(rootID, "Root Account", "ROOT", "", usd()) +
		accountXML(guid.New(), "Assets", "ASSET", rootID, nil) +
		xmlFooter
	out := outPath(t)

	res, err := Run(writeSource(t, src), out, quietOpts())
	require.NoError(t, err)
	assert.Equal(t, 7, res.SkippedTransactions)
}

func TestRun_GzipSource(t *testing.T) {
	rootID := guid.New()
	src := bookXML(
		accountXML(rootID, "Root Account", "ROOT", "", usd()),
		accountXML(guid.New(), "Assets", "ASSET", rootID, nil),
	)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(src))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "src.gnucash")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	out := outPath(t)

	res, err := Run(path, out, quietOpts())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
}

func TestRun_CodeAndDescriptionPreserved(t *testing.T) {
	rootID := guid.New()
	detail := "<gnc:account version=\"2.0.0\">\n" +
		"  <act:name>Checking</act:name>\n" +
		"  <act:id type=\"guid\">" + guid.New() + "</act:id>\n" +
		"  <act:type>BANK</act:type>\n" +
		"  <act:code>1010</act:code>\n" +
		"  <act:description>Main checking</act:description>\n" +
		"  <act:parent type=\"guid\">" + rootID + "</act:parent>\n" +
		"</gnc:account>\n"
	src := bookXML(
		accountXML(rootID, "Root Account", "ROOT", "", usd()),
		detail,
	)
	out := outPath(t)

	_, err := Run(writeSource(t, src), out, quietOpts())
	require.NoError(t, err)

	byName := accountsByName(t, out)
	assert.Equal(t, "1010", byName["Checking"].Code)
	assert.Equal(t, "Main checking", byName["Checking"].Description)
}

func TestRun_BooksRowAndVersions(t *testing.T) {
	src := bookXML(accountXML(guid.New(), "Root Account", "ROOT", "", usd()))
	out := outPath(t)

	_, err := Run(writeSource(t, src), out, quietOpts())
	require.NoError(t, err)

	info, err := book.ReadInfo(out)
	require.NoError(t, err)
	byName := accountsByName(t, out)
	assert.Equal(t, byName[model.RootAccountName].GUID, info.RootGUID)
	assert.Equal(t, byName[model.TemplateRootName].GUID, info.TemplateRootGUID)

	versions, err := book.ReadVersions(out)
	require.NoError(t, err)
	assert.NotEmpty(t, versions["Gnucash"])
}

func TestRun_BadXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.gnucash")
	require.NoError(t, os.WriteFile(path, []byte("<gnc-v2><broken"), 0o644))

	_, err := Run(path, outPath(t), quietOpts())
	assert.Error(t, err)
}

func TestRun_MissingInput(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "absent.gnucash"), outPath(t), quietOpts())
	assert.Error(t, err)
}
