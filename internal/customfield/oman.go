package customfield

var (
	isZeroRated = Definition{
		Fieldname:   "is_zero_rated",
		Label:       "Is Zero Rated",
		Type:        TypeCheck,
		FetchFrom:   "item_code.is_zero_rated",
		InsertAfter: "description",
		PrintHide:   true,
	}

	isExempt = Definition{
		Fieldname:   "is_exempt",
		Label:       "Is Exempt",
		Type:        TypeCheck,
		FetchFrom:   "item_code.is_exempt",
		InsertAfter: "is_zero_rated",
		PrintHide:   true,
	}

	// Item master carries the flags itself, the item rows fetch them from it.
	itemMasterFields = []Definition{
		{Fieldname: "is_zero_rated", Label: "Is Zero Rated", Type: TypeCheck, InsertAfter: "item_tax_section_break"},
		{Fieldname: "is_exempt", Label: "Is Exempt", Type: TypeCheck, InsertAfter: "is_zero_rated"},
	}

	itemRowFields = []Definition{isZeroRated, isExempt}

	purchaseFields = []Definition{
		{
			Fieldname:   "company_trn",
			Label:       "Company TRN",
			Type:        TypeReadOnly,
			InsertAfter: "shipping_address",
			FetchFrom:   "company.tax_id",
			PrintHide:   true,
		},
		{
			Fieldname:   "supplier_name_in_arabic",
			Label:       "Supplier Name in Arabic",
			Type:        TypeReadOnly,
			InsertAfter: "supplier_name",
			FetchFrom:   "supplier.supplier_name_in_arabic",
			PrintHide:   true,
		},
	}

	salesFields = []Definition{
		{
			Fieldname:   "company_trn",
			Label:       "Company TRN",
			Type:        TypeReadOnly,
			InsertAfter: "company_address",
			FetchFrom:   "company.tax_id",
			PrintHide:   true,
		},
		{
			Fieldname:   "customer_name_in_arabic",
			Label:       "Customer Name in Arabic",
			Type:        TypeReadOnly,
			InsertAfter: "customer_name",
			FetchFrom:   "customer.customer_name_in_arabic",
			PrintHide:   true,
		},
		{
			Fieldname: "oman_einv_qr",
			Label:     "OMAN E-Invoicing QR",
			Type:      TypeAttachImage,
			ReadOnly:  true,
			NoCopy:    true,
			Hidden:    true,
		},
	}
)

// Oman returns the custom fields installed by the Oman VAT localization.
func Oman() Mapping {
	return Mapping{
		"Item": itemMasterFields,
		"Customer": {
			{Fieldname: "customer_name_in_arabic", Label: "Customer Name in Arabic", Type: TypeData, InsertAfter: "customer_name"},
		},
		"Supplier": {
			{Fieldname: "supplier_name_in_arabic", Label: "Supplier Name in Arabic", Type: TypeData, InsertAfter: "supplier_name"},
		},
		"Purchase Invoice":        purchaseFields,
		"Purchase Order":          purchaseFields,
		"Purchase Receipt":        purchaseFields,
		"Sales Invoice":           salesFields,
		"POS Invoice":             salesFields,
		"Sales Order":             salesFields,
		"Delivery Note":           salesFields,
		"Sales Invoice Item":      itemRowFields,
		"POS Invoice Item":        itemRowFields,
		"Purchase Invoice Item":   itemRowFields,
		"Sales Order Item":        itemRowFields,
		"Delivery Note Item":      itemRowFields,
		"Quotation Item":          itemRowFields,
		"Purchase Order Item":     itemRowFields,
		"Purchase Receipt Item":   itemRowFields,
		"Supplier Quotation Item": itemRowFields,
		"Address": {
			{Fieldname: "address_in_arabic", Label: "Address in Arabic", Type: TypeData, InsertAfter: "address_line2"},
		},
		"Company": {
			{Fieldname: "company_name_in_arabic", Label: "Company Name In Arabic", Type: TypeData, InsertAfter: "company_name"},
		},
	}
}
