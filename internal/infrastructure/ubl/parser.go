// Package ubl interpreta facturas electrónicas de proveedores en formato
// UBL 2.1 (DIAN), ya sea el Invoice suelto o el contenedor AttachedDocument
// que envían los facturadores.
package ubl

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/portal-intranet/internal/application/ports"
	"github.com/jhoicas/portal-intranet/pkg/nit"
)

const dateLayout = "2006-01-02"

// Errores de interpretación.
var (
	ErrNotInvoice    = errors.New("ubl: el XML no es una factura electrónica (Invoice/AttachedDocument)")
	ErrMissingField  = errors.New("ubl: falta un campo obligatorio")
	ErrInvalidAmount = errors.New("ubl: monto inválido")
)

var _ ports.InvoiceXMLParser = (*Parser)(nil)

// Parser implementa ports.InvoiceXMLParser con etree.
type Parser struct{}

// NewParser crea el parser.
func NewParser() *Parser { return &Parser{} }

// Parse extrae los datos de la factura y calcula su huella sobre el XML canonicalizado.
func (p *Parser) Parse(xmlBytes []byte) (*ports.ParsedInvoice, error) {
	root, err := readRoot(xmlBytes)
	if err != nil {
		return nil, err
	}
	if root.Tag == "AttachedDocument" {
		root, err = embeddedInvoice(root)
		if err != nil {
			return nil, err
		}
	}
	if root.Tag != "Invoice" {
		return nil, ErrNotInvoice
	}

	out := &ports.ParsedInvoice{
		Number: strings.ToUpper(text(root, "ID")),
		CUFE:   text(root, "UUID"),
	}
	if out.Number == "" {
		return nil, fmt.Errorf("%w: cbc:ID", ErrMissingField)
	}
	if out.IssueDate, err = parseDate(text(root, "IssueDate")); err != nil {
		return nil, fmt.Errorf("%w: cbc:IssueDate", ErrMissingField)
	}
	due := text(root, "DueDate")
	if due == "" {
		due = text(root, "PaymentMeans", "PaymentDueDate")
	}
	if due != "" {
		d, err := parseDate(due)
		if err != nil {
			return nil, fmt.Errorf("ubl: DueDate inválida: %w", err)
		}
		out.DueDate = &d
	}

	party := find(root, "AccountingSupplierParty", "Party")
	if party == nil {
		return nil, fmt.Errorf("%w: cac:AccountingSupplierParty", ErrMissingField)
	}
	// El CompanyID puede traer el DV ("900123456-8"); solo se conserva el número.
	out.SupplierNIT, _ = nit.Split(text(party, "PartyTaxScheme", "CompanyID"))
	if out.SupplierNIT == "" {
		out.SupplierNIT, _ = nit.Split(text(party, "PartyLegalEntity", "CompanyID"))
	}
	if out.SupplierNIT == "" {
		return nil, fmt.Errorf("%w: NIT del proveedor", ErrMissingField)
	}
	out.SupplierName = firstNonEmpty(
		text(party, "PartyTaxScheme", "RegistrationName"),
		text(party, "PartyLegalEntity", "RegistrationName"),
		text(party, "PartyName", "Name"),
	)
	if out.SupplierName == "" {
		return nil, fmt.Errorf("%w: razón social del proveedor", ErrMissingField)
	}

	if out.Subtotal, err = amount(text(root, "LegalMonetaryTotal", "LineExtensionAmount")); err != nil {
		return nil, err
	}
	if out.Total, err = amount(text(root, "LegalMonetaryTotal", "PayableAmount")); err != nil {
		return nil, err
	}
	out.TaxTotal = decimal.Zero
	for _, tt := range children(root, "TaxTotal") {
		v, err := amount(text(tt, "TaxAmount"))
		if err != nil {
			return nil, err
		}
		out.TaxTotal = out.TaxTotal.Add(v)
	}

	if out.Fingerprint, err = Fingerprint(xmlBytes); err != nil {
		return nil, err
	}
	return out, nil
}

// Fingerprint devuelve el SHA-256 (hex) del XML canonicalizado (C14N 1.0), de
// modo que diferencias de formato no cambian la huella.
func Fingerprint(xmlBytes []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	dec.CharsetReader = charsetReader
	dec.Entity = map[string]string{}
	canon, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("ubl: canonicalizar XML: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

func readRoot(xmlBytes []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("ubl: XML mal formado: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrNotInvoice
	}
	return root, nil
}

// embeddedInvoice extrae el Invoice que el AttachedDocument trae como texto en
// cac:Attachment/cac:ExternalReference/cbc:Description.
func embeddedInvoice(attached *etree.Element) (*etree.Element, error) {
	inner := strings.TrimSpace(text(attached, "Attachment", "ExternalReference", "Description"))
	if inner == "" {
		return nil, ErrNotInvoice
	}
	return readRoot([]byte(inner))
}

// charsetReader admite los encabezados ISO-8859-1 / windows-1252 que aún usan
// algunos facturadores.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "":
		return input, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("ubl: codificación no soportada: %s", charset)
}

// ── navegación por nombre local (ignora prefijos de namespace) ────────────────

func children(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

func find(e *etree.Element, path ...string) *etree.Element {
	for _, tag := range path {
		if e == nil {
			return nil
		}
		var next *etree.Element
		for _, c := range e.ChildElements() {
			if c.Tag == tag {
				next = c
				break
			}
		}
		e = next
	}
	return e
}

func text(e *etree.Element, path ...string) string {
	if el := find(e, path...); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func amount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: valor vacío", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
