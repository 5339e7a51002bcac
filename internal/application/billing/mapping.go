package billing

import (
	"time"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/dto"
	domainbilling "github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/fiscal"
)

// Conversions DTO <-> entités partagées par les cas d'usage.

func fiscalFromDTO(d *dto.FiscalInfoDTO) entity.FiscalInfo {
	if d == nil {
		return entity.FiscalInfo{Region: entity.FiscalRegionNone}
	}
	return entity.FiscalInfo{
		Region:    string(fiscal.ParseRegion(d.Region)),
		NIF:       d.Nif,
		Stat:      d.Stat,
		Siret:     d.Siret,
		TVANumber: d.TvaNumber,
	}
}

func fiscalToDTO(f entity.FiscalInfo) *dto.FiscalInfoDTO {
	if fiscal.ParseRegion(f.Region) == fiscal.RegionNone &&
		f.NIF == "" && f.Stat == "" && f.Siret == "" && f.TVANumber == "" {
		return nil
	}
	return &dto.FiscalInfoDTO{
		Region:    string(fiscal.ParseRegion(f.Region)),
		Nif:       f.NIF,
		Stat:      f.Stat,
		Siret:     f.Siret,
		TvaNumber: f.TVANumber,
	}
}

func itemsFromDTO(in []dto.LineItemDTO) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.LineItem{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}

func itemsToDTO(in []entity.LineItem) []dto.LineItemDTO {
	out := make([]dto.LineItemDTO, 0, len(in))
	for _, it := range in {
		out = append(out, dto.LineItemDTO{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	total := domainbilling.CalculateTotal(inv.Items)
	return &dto.InvoiceResponse{
		ID:               inv.ID,
		UserID:           inv.UserID,
		InvoiceNumber:    inv.Number,
		InvoiceDate:      formatDate(inv.Date),
		DueDate:          formatDatePtr(inv.DueDate),
		Currency:         inv.Currency,
		PaymentMethod:    inv.PaymentMethod,
		CompanyName:      inv.CompanyName,
		CompanyAddress:   inv.CompanyAddress,
		CompanyEmail:     inv.CompanyEmail,
		CompanyPhone:     inv.CompanyPhone,
		LogoURL:          inv.LogoURL,
		FiscalInfo:       fiscalToDTO(inv.CompanyFiscal),
		ClientName:       inv.ClientName,
		ClientAddress:    inv.ClientAddress,
		ClientEmail:      inv.ClientEmail,
		ClientPhone:      inv.ClientPhone,
		ClientFiscalInfo: fiscalToDTO(inv.ClientFiscal),
		Items:            itemsToDTO(inv.Items),
		Total:            total,
		TotalDisplay:     fiscal.FormatAmount(total),
		Status:           inv.Status,
		Notes:            inv.Notes,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	total := domainbilling.CalculateTotal(q.Items)
	return &dto.QuoteResponse{
		ID:               q.ID,
		UserID:           q.UserID,
		QuoteNumber:      q.Number,
		QuoteDate:        formatDate(q.Date),
		ValidityDate:     formatDate(q.ValidityDate),
		Currency:         q.Currency,
		PaymentMethod:    q.PaymentMethod,
		CompanyName:      q.CompanyName,
		CompanyAddress:   q.CompanyAddress,
		CompanyEmail:     q.CompanyEmail,
		CompanyPhone:     q.CompanyPhone,
		LogoURL:          q.LogoURL,
		FiscalInfo:       fiscalToDTO(q.CompanyFiscal),
		ClientName:       q.ClientName,
		ClientAddress:    q.ClientAddress,
		ClientEmail:      q.ClientEmail,
		ClientPhone:      q.ClientPhone,
		ClientFiscalInfo: fiscalToDTO(q.ClientFiscal),
		Items:            itemsToDTO(q.Items),
		Total:            total,
		TotalDisplay:     fiscal.FormatAmount(total),
		Status:           q.Status,
		Notes:            q.Notes,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Email:       c.Email,
		Address:     c.Address,
		Phone:       c.Phone,
		CompanyName: c.CompanyName,
		Notes:       c.Notes,
		FiscalInfo:  fiscalToDTO(c.Fiscal),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:                   c.ID,
		UserID:               c.UserID,
		Name:                 c.Name,
		Address:              c.Address,
		Email:                c.Email,
		Phone:                c.Phone,
		LogoURL:              c.LogoURL,
		FiscalInfo:           fiscalToDTO(c.Fiscal),
		IBAN:                 c.IBAN,
		BIC:                  c.BIC,
		DefaultCurrency:      c.DefaultCurrency,
		DefaultPaymentMethod: c.DefaultPaymentMethod,
		InvoicePrefix:        c.InvoicePrefix,
		QuotePrefix:          c.QuotePrefix,
		IsDefault:            c.IsDefault,
		Notes:                c.Notes,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}
