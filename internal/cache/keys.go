package cache

const (
	KeyLanding    = "catalog:landing"
	KeyCategories = "catalog:categories"
	KeyVoucher    = "catalog:voucher:%s"
)
