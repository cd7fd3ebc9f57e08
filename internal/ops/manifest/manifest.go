// Package manifest renders printable delivery documents. Pure formatting;
// all business logic stays in the services feeding it.
package manifest

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jung-kurt/gofpdf"
)

const footerBrand = "SupportLogistic - Sistema de Gestión"

// FormatServiceNumber renders a guide number the way the dashboard shows it.
func FormatServiceNumber(n int64) string {
	if n == 0 {
		return "—"
	}
	return fmt.Sprintf("#%d", n)
}

// ZoneManifest renders the MANIFIESTO DE CARGA for one zone: header metadata,
// one tabulated row per service in the given order, and signature blocks.
func ZoneManifest(zone, driverName string, services []entity.Service) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr("MANIFIESTO DE CARGA"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr(zone), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	meta := fmt.Sprintf("Fecha: %s    Total envíos: %d", time.Now().Format("02/01/2006"), len(services))
	if driverName != "" {
		meta += "    Conductor: " + driverName
	}
	pdf.CellFormat(0, 6, tr(meta), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Table header.
	widths := []float64{10, 22, 78, 50, 30}
	headers := []string{"", "# Guía", "Dirección de Entrega", "Destinatario", "Teléfono"}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i, svc := range services {
		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(widths[0], 7, "", "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[1], 7, tr(FormatServiceNumber(svc.ServiceNumber)), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 7, tr(orDash(svc.DeliveryAddress)), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[3], 7, tr(orDash(svc.DeliveryContactName)), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[4], 7, tr(orDash(svc.DeliveryPhone)), "1", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total de envíos en ruta: %d", len(services))), "", 1, "L", false, 0, "")

	signatureBlocks(pdf, tr, "Firma Despachador", "Firma Conductor")
	footer(pdf, tr)

	return output(pdf)
}

// DeliveryNote renders the NOTA DE ENTREGA for a single service.
func DeliveryNote(svc *entity.Service) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	documentHeader(pdf, tr, "NOTA DE ENTREGA", svc)

	if svc.Client != nil {
		section(pdf, tr, "DATOS DEL CLIENTE", [][2]string{
			{"Empresa:", orDash(svc.Client.BusinessName)},
			{"NIT:", orDash(svc.Client.NIT)},
			{"Dirección:", orDash(svc.Client.Address)},
		})
	}

	section(pdf, tr, "ORIGEN (RECOGIDA)", [][2]string{
		{"Dirección:", orDash(svc.PickupAddress)},
		{"Contacto:", orDash(svc.PickupContactName)},
		{"Teléfono:", orDash(svc.PickupPhone)},
	})
	section(pdf, tr, "DESTINO (ENTREGA)", [][2]string{
		{"Dirección:", orDash(svc.DeliveryAddress)},
		{"Contacto:", orDash(svc.DeliveryContactName)},
		{"Teléfono:", orDash(svc.DeliveryPhone)},
	})

	if svc.Observations != "" {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 6, tr("OBSERVACIONES:"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, tr(svc.Observations), "", "L", false)
		pdf.Ln(2)
	}

	signatureBlocks(pdf, tr, "Firma del Remitente", "Firma del Destinatario")
	footer(pdf, tr)

	return output(pdf)
}

// TransportGuide renders the GUÍA DE TRANSPORTE for a single service,
// including driver data.
func TransportGuide(svc *entity.Service) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	documentHeader(pdf, tr, "GUÍA DE TRANSPORTE", svc)

	info := [][2]string{
		{"N° Servicio:", FormatServiceNumber(svc.ServiceNumber)},
		{"Estado:", svc.Status},
	}
	if svc.Client != nil {
		info = append(info, [2]string{"Cliente:", orDash(svc.Client.BusinessName)})
	}
	section(pdf, tr, "INFORMACIÓN DEL SERVICIO", info)

	driverName := "Sin asignar"
	driverPhone := "—"
	if svc.Driver != nil {
		driverName = orDash(svc.Driver.FullName)
		driverPhone = orDash(svc.Driver.Phone)
	}
	section(pdf, tr, "DATOS DEL CONDUCTOR", [][2]string{
		{"Nombre:", driverName},
		{"Teléfono:", driverPhone},
	})

	section(pdf, tr, "PUNTO DE RECOGIDA", [][2]string{
		{"Dirección:", orDash(svc.PickupAddress)},
		{"Contacto:", orDash(svc.PickupContactName)},
		{"Teléfono:", orDash(svc.PickupPhone)},
	})
	section(pdf, tr, "PUNTO DE ENTREGA", [][2]string{
		{"Dirección:", orDash(svc.DeliveryAddress)},
		{"Contacto:", orDash(svc.DeliveryContactName)},
		{"Teléfono:", orDash(svc.DeliveryPhone)},
	})

	signatureBlocks(pdf, tr, "Firma Despachador", "Firma Conductor")
	footer(pdf, tr)

	return output(pdf)
}

func documentHeader(pdf *gofpdf.Fpdf, tr func(string) string, title string, svc *entity.Service) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "SupportLogistic", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(title), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr(FormatServiceNumber(svc.ServiceNumber)), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr("Fecha: "+svc.CreatedAt.Format("02/01/2006")), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, title string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 6, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		pdf.CellFormat(35, 5, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 5, tr(row[1]), "", "L", false)
	}
	pdf.Ln(3)
}

func signatureBlocks(pdf *gofpdf.Fpdf, tr func(string) string, left, right string) {
	pdf.Ln(16)
	y := pdf.GetY()
	pdf.Line(20, y, 85, y)
	pdf.Line(120, y, 185, y)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetY(y + 1)
	pdf.SetX(20)
	pdf.CellFormat(65, 5, tr(left), "", 0, "C", false, 0, "")
	pdf.SetX(120)
	pdf.CellFormat(65, 5, tr(right), "", 1, "C", false, 0, "")
}

func footer(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(0, 4, tr(footerBrand), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, tr("Generado: "+time.Now().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
