// Package crm is a narrow client for the Syntellicore CRM gateway that owns
// brokerage identities.
//
// Only the calls the onboarding gateway needs are implemented: password
// login, logout, account creation and onboarding-wizard step status updates.
// Every call is a form-encoded POST to
//
//	{base}/gateway/api/{version}/syntellicore.cfc?method={method}
//
// authenticated with the api_key header. Responses share the envelope
// {"success": bool, "data": ..., "info": {"message": ...}}.
//
// Calls are never retried here; callers decide. Failures are classified as
// ErrRejected (the CRM answered and said no) or ErrUnavailable (transport
// failure, server error, or an unreadable response).
package crm
