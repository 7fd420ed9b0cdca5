package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/MarcGrol/salesbackend/lib/myconfig"
	"github.com/MarcGrol/salesbackend/lib/myerrors"
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/lib/mypubsub"
	"github.com/MarcGrol/salesbackend/lib/mystore"
	"github.com/MarcGrol/salesbackend/lib/mytime"
)

const (
	attachmentName = "factura.pdf"
	mailSubject    = "Factura de su compra"
	mailBody       = "Adjuntamos la factura de su compra."

	mailClaimTimeout = 5 * time.Minute
)

type service struct {
	invoiceStore mystore.Store[Invoice]
	pubsub       mypubsub.PubSub
	mailer       Mailer
	nower        mytime.Nower
	company      myconfig.Company
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Invoice], pubsub mypubsub.PubSub, mailer Mailer, nower mytime.Nower, company myconfig.Company, logger mylog.Logger) *service {
	return &service{
		invoiceStore: store,
		pubsub:       pubsub,
		mailer:       mailer,
		nower:        nower,
		company:      company,
		logger:       logger,
	}
}

func (s *service) getInvoicePDF(c context.Context, saleUID string) ([]byte, error) {
	invoice, found, err := s.invoiceStore.Get(c, saleUID)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	if !found {
		return nil, myerrors.NewNotFoundErrorf("invoice for sale %s not found", saleUID)
	}

	pdf, err := renderPDF(s.company, invoice)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	return pdf, nil
}

// mailInvoice is safe to repeat: the invoice is recorded and claimed for mailing in one
// transaction, so a redelivered event mails it at most once.
func (s *service) mailInvoice(c context.Context, invoice Invoice) error {
	invoice, claimed, err := s.claimMailing(c, invoice)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	pdf, err := renderPDF(s.company, invoice)
	if err != nil {
		s.releaseMailing(c, invoice.SaleUID)
		return myerrors.NewInternalError(err)
	}

	err = s.mailer.Send(c, Mail{
		To:             invoice.Customer.Email,
		Subject:        mailSubject,
		Body:           mailBody,
		AttachmentName: attachmentName,
		Attachment:     pdf,
	})
	if err != nil {
		s.releaseMailing(c, invoice.SaleUID)
		return myerrors.NewUnavailableError(fmt.Errorf("error mailing invoice %d to %s: %s", invoice.Number, invoice.Customer.Email, err))
	}

	err = s.invoiceStore.RunInTransaction(c, func(c context.Context) error {
		stored, _, err := s.invoiceStore.Get(c, invoice.SaleUID)
		if err != nil {
			return err
		}
		now := s.nower.Now()
		stored.MailedAt = &now
		stored.MailingSince = time.Time{}
		return s.invoiceStore.Put(c, stored.SaleUID, stored)
	})
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	s.logger.Log(c, invoice.SaleUID, mylog.SeverityInfo, "Mailed invoice %d (%s) to %s", invoice.Number, formatCents(invoice.TotalInCents), invoice.Customer.Email)

	return nil
}

// claimMailing stores the invoice when it is new and marks it as being mailed. An invoice
// that was mailed before is not claimed. A claim younger than mailClaimTimeout makes the
// caller retry later.
func (s *service) claimMailing(c context.Context, invoice Invoice) (Invoice, bool, error) {
	claimed := false
	err := s.invoiceStore.RunInTransaction(c, func(c context.Context) error {
		existing, found, err := s.invoiceStore.Get(c, invoice.SaleUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if found {
			invoice = existing
		}
		if invoice.IsMailed() {
			s.logger.Log(c, invoice.SaleUID, mylog.SeverityInfo, "Invoice %d already mailed at %s", invoice.Number, invoice.MailedAt)
			return nil
		}

		now := s.nower.Now()
		if !invoice.MailingSince.IsZero() && now.Sub(invoice.MailingSince) < mailClaimTimeout {
			return myerrors.NewUnavailableError(fmt.Errorf("invoice %d is being mailed since %s", invoice.Number, invoice.MailingSince))
		}

		invoice.MailingSince = now
		err = s.invoiceStore.Put(c, invoice.SaleUID, invoice)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		claimed = true
		return nil
	})
	if err != nil {
		return Invoice{}, false, err
	}

	return invoice, claimed, nil
}

func (s *service) releaseMailing(c context.Context, saleUID string) {
	err := s.invoiceStore.RunInTransaction(c, func(c context.Context) error {
		stored, found, err := s.invoiceStore.Get(c, saleUID)
		if err != nil || !found {
			return err
		}
		stored.MailingSince = time.Time{}
		return s.invoiceStore.Put(c, saleUID, stored)
	})
	if err != nil {
		s.logger.Log(c, saleUID, mylog.SeverityError, "Error releasing mail claim: %s", err)
	}
}
