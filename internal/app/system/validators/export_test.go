package validators

// Test-only aliases for the external validators_test package.
var (
	CollectionExists         = collectionExists
	EnsureCollection         = ensureCollection
	IsNamespaceExistsErr     = isNamespaceExistsErr
	IsNoSuchCommand          = isNoSuchCommand
	IsNotImplemented         = isNotImplemented
	ServicesSchema           = servicesSchema
	IndustriesSchema         = industriesSchema
	ContactSubmissionsSchema = contactSubmissionsSchema
	SupportTicketsSchema     = supportTicketsSchema
)
