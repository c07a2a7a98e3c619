// Package pdf renders the printable SIMLOK permit document for an
// approved submission.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"simlok-backend/internal/domain/submission"
)

// ErrNotApproved is returned when rendering is requested for a submission
// that has not been granted a permit.
var ErrNotApproved = errors.New("pdf: submission is not approved")

const dateLayout = "2 January 2006"

// QRImager produces the PNG bytes of the permit QR code from its signed
// payload.
type QRImager interface {
	PNG(token string) ([]byte, error)
}

type Renderer struct {
	qr QRImager
}

func NewRenderer(qr QRImager) *Renderer {
	return &Renderer{qr: qr}
}

// Render produces the permit PDF for an approved submission. The document
// carries the SIMLOK number, vendor and job details, the worker list and
// the signer block with the embedded QR code.
func (r *Renderer) Render(sub *submission.Submission) ([]byte, error) {
	if sub.ApprovalStatus != submission.ApprovalApproved || sub.SimlokNumber == nil {
		return nil, ErrNotApproved
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("SIMLOK %s", *sub.SimlokNumber), false)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 8, "SURAT IZIN MASUK LOKASI (SIMLOK)", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 7, fmt.Sprintf("Nomor: %s", *sub.SimlokNumber), "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 11)
	r.field(doc, "Nama Vendor", sub.VendorName)
	r.field(doc, "Petugas", sub.OfficerName)
	r.field(doc, "Pekerjaan", sub.JobDescription)
	r.field(doc, "Lokasi Kerja", sub.WorkLocation)
	r.field(doc, "Pelaksanaan", fmt.Sprintf("%s s.d. %s",
		sub.ImplementationStart.Format(dateLayout),
		sub.ImplementationEnd.Format(dateLayout)))
	r.field(doc, "Jam Kerja", sub.WorkingHours)
	doc.Ln(4)

	if len(sub.Workers) > 0 {
		r.workerTable(doc, sub.Workers)
		doc.Ln(4)
	}

	r.signerBlock(doc, sub)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) field(doc *gofpdf.Fpdf, label, value string) {
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, ": "+value, "", "L", false)
}

func (r *Renderer) workerTable(doc *gofpdf.Fpdf, workers []submission.Worker) {
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 6, "Daftar Pekerja", "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(10, 7, "No", "1", 0, "C", true, 0, "")
	doc.CellFormat(90, 7, "Nama", "1", 0, "L", true, 0, "")
	doc.CellFormat(50, 7, "No. Pass HSSE", "1", 0, "L", true, 0, "")
	doc.CellFormat(40, 7, "Berlaku s.d.", "1", 1, "L", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for i, w := range workers {
		pass, valid := "-", "-"
		if w.HSSEPassNumber != nil {
			pass = *w.HSSEPassNumber
		}
		if w.HSSEPassValid != nil {
			valid = w.HSSEPassValid.Format("02-01-2006")
		}
		doc.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		doc.CellFormat(90, 7, w.Name, "1", 0, "L", false, 0, "")
		doc.CellFormat(50, 7, pass, "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 7, valid, "1", 1, "L", false, 0, "")
	}
}

func (r *Renderer) signerBlock(doc *gofpdf.Fpdf, sub *submission.Submission) {
	approvedAt := time.Now()
	if sub.ApprovedAt != nil {
		approvedAt = *sub.ApprovedAt
	}

	x := 120.0
	doc.SetX(x)
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, approvedAt.Format(dateLayout), "", 1, "L", false, 0, "")
	doc.SetX(x)
	doc.CellFormat(0, 6, sub.SignerPosition, "", 1, "L", false, 0, "")

	if r.qr != nil && sub.QRPayload != "" {
		if png, err := r.qr.PNG(sub.QRPayload); err == nil {
			name := "permit-qr"
			doc.RegisterImageOptionsReader(name,
				gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
			doc.ImageOptions(name, x, doc.GetY()+2, 30, 30, false,
				gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
			doc.SetY(doc.GetY() + 34)
		}
	} else {
		doc.Ln(26)
	}

	doc.SetX(x)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 6, sub.SignerName, "", 1, "L", false, 0, "")
}
