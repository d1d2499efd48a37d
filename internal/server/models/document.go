package models

// Document links an uploaded filename to the account that uploaded it.
// There is no uniqueness over (OwnerKey, Filename): uploading the same name
// twice produces two rows.
type Document struct {
	ID       int64
	OwnerKey string
	Filename string
}
