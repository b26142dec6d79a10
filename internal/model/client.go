package model

// Client is an address-book entry whose fields populate a document header.
// The csv tags drive the contact-list import (gocsv).
type Client struct {
	ID      string `json:"id" csv:"-"`
	Name    string `json:"name" csv:"nombre"`
	Address string `json:"address" csv:"direccion"`
	Phone   string `json:"phone" csv:"telefono"`
	Email   string `json:"email" csv:"email"`
	TaxID   string `json:"taxId" csv:"cuit"`
	Notes   string `json:"notes" csv:"notas"`
}
