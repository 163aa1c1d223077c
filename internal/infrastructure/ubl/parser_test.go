package ubl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoiceXML = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
	<cbc:UBLVersionID>UBL 2.1</cbc:UBLVersionID>
	<cbc:ID>setp990000002</cbc:ID>
	<cbc:UUID schemeName="CUFE-SHA384">941cf36af62dbbcc3f1e5a4c2b8c5e2d</cbc:UUID>
	<cbc:IssueDate>2026-04-10</cbc:IssueDate>
	<cac:AccountingSupplierParty>
		<cac:Party>
			<cac:PartyName><cbc:Name>Lab Andino</cbc:Name></cac:PartyName>
			<cac:PartyTaxScheme>
				<cbc:RegistrationName>Laboratorio Andino SA</cbc:RegistrationName>
				<cbc:CompanyID schemeID="8" schemeName="31">900.123.456</cbc:CompanyID>
			</cac:PartyTaxScheme>
		</cac:Party>
	</cac:AccountingSupplierParty>
	<cac:PaymentMeans>
		<cbc:ID>2</cbc:ID>
		<cbc:PaymentDueDate>2026-05-10</cbc:PaymentDueDate>
	</cac:PaymentMeans>
	<cac:TaxTotal><cbc:TaxAmount currencyID="COP">190.00</cbc:TaxAmount></cac:TaxTotal>
	<cac:TaxTotal><cbc:TaxAmount currencyID="COP">10.00</cbc:TaxAmount></cac:TaxTotal>
	<cac:LegalMonetaryTotal>
		<cbc:LineExtensionAmount currencyID="COP">1000.00</cbc:LineExtensionAmount>
		<cbc:PayableAmount currencyID="COP">1200.00</cbc:PayableAmount>
	</cac:LegalMonetaryTotal>
	<cac:InvoiceLine>
		<cbc:ID>1</cbc:ID>
		<cbc:LineExtensionAmount currencyID="COP">1000.00</cbc:LineExtensionAmount>
	</cac:InvoiceLine>
</Invoice>`

func TestParse_Invoice(t *testing.T) {
	out, err := NewParser().Parse([]byte(invoiceXML))
	require.NoError(t, err)

	assert.Equal(t, "SETP990000002", out.Number)
	assert.Equal(t, "941cf36af62dbbcc3f1e5a4c2b8c5e2d", out.CUFE)
	assert.Equal(t, "2026-04-10", out.IssueDate.Format(dateLayout))
	require.NotNil(t, out.DueDate)
	assert.Equal(t, "2026-05-10", out.DueDate.Format(dateLayout))
	assert.Equal(t, "900123456", out.SupplierNIT)
	assert.Equal(t, "Laboratorio Andino SA", out.SupplierName)
	assert.Equal(t, "1000", out.Subtotal.String())
	assert.Equal(t, "200", out.TaxTotal.String())
	assert.Equal(t, "1200", out.Total.String())
	assert.Len(t, out.Fingerprint, 64)
}

func TestParse_AttachedDocument(t *testing.T) {
	inner := strings.TrimPrefix(invoiceXML, `<?xml version="1.0" encoding="UTF-8"?>`)
	attached := `<?xml version="1.0" encoding="UTF-8"?>
<AttachedDocument xmlns="urn:oasis:names:specification:ubl:schema:xsd:AttachedDocument-2"
	xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
	<cbc:ID>AD-1</cbc:ID>
	<cac:Attachment>
		<cac:ExternalReference>
			<cbc:MimeCode>text/xml</cbc:MimeCode>
			<cbc:Description><![CDATA[` + inner + `]]></cbc:Description>
		</cac:ExternalReference>
	</cac:Attachment>
</AttachedDocument>`

	out, err := NewParser().Parse([]byte(attached))
	require.NoError(t, err)
	assert.Equal(t, "SETP990000002", out.Number)
	assert.Equal(t, "900123456", out.SupplierNIT)
}

func TestParse_NITConDV(t *testing.T) {
	conDV := strings.Replace(invoiceXML, ">900.123.456<", ">900123456-8<", 1)
	out, err := NewParser().Parse([]byte(conDV))
	require.NoError(t, err)
	assert.Equal(t, "900123456", out.SupplierNIT)

	// Sin CompanyID en PartyTaxScheme se toma el de PartyLegalEntity.
	legal := strings.Replace(invoiceXML,
		`<cbc:CompanyID schemeID="8" schemeName="31">900.123.456</cbc:CompanyID>`, "", 1)
	legal = strings.Replace(legal, "</cac:PartyTaxScheme>",
		`</cac:PartyTaxScheme><cac:PartyLegalEntity><cbc:CompanyID>900.123.456-8</cbc:CompanyID></cac:PartyLegalEntity>`, 1)
	out, err = NewParser().Parse([]byte(legal))
	require.NoError(t, err)
	assert.Equal(t, "900123456", out.SupplierNIT)
}

func TestParse_ISO88591(t *testing.T) {
	// "Compañía" en Latin-1: ñ = 0xF1, í = 0xED.
	xmlISO := strings.Replace(invoiceXML, `encoding="UTF-8"`, `encoding="ISO-8859-1"`, 1)
	xmlISO = strings.Replace(xmlISO, "Laboratorio Andino SA", "Compa\xf1\xeda Andina SA", 1)

	out, err := NewParser().Parse([]byte(xmlISO))
	require.NoError(t, err)
	assert.Equal(t, "Compañía Andina SA", out.SupplierName)
}

func TestParse_Errores(t *testing.T) {
	cases := []struct {
		name string
		xml  string
	}{
		{"mal formado", `<Invoice><cbc:ID>1</Invoice>`},
		{"no es factura", `<CreditNote><ID>1</ID></CreditNote>`},
		{"sin número", strings.Replace(invoiceXML, "<cbc:ID>setp990000002</cbc:ID>", "", 1)},
		{"sin NIT", strings.Replace(invoiceXML, "900.123.456", "", 1)},
		{"monto inválido", strings.Replace(invoiceXML, "1200.00", "mil", 1)},
		{"sin fecha", strings.Replace(invoiceXML, "<cbc:IssueDate>2026-04-10</cbc:IssueDate>", "", 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParser().Parse([]byte(tc.xml))
			assert.Error(t, err)
		})
	}
}

func TestFingerprint_IgnoraFormato(t *testing.T) {
	a, err := Fingerprint([]byte(`<r><a y="2" x="1"/></r>`))
	require.NoError(t, err)
	b, err := Fingerprint([]byte(`<r><a x="1"  y="2"></a></r>`))
	require.NoError(t, err)
	c, err := Fingerprint([]byte(`<r><a x="1" y="3"/></r>`))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
