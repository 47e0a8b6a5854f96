package constant

// User-facing message texts. Handlers format these with fmt.Sprintf; the
// placeholder order is part of the text.

// Registration and status.
const (
	MsgWelcome        = "Welcome, %s! You are now registered."
	MsgWelcomeBack    = "Welcome back, %s!"
	MsgStatusActive   = "Your subscription is active until %s."
	MsgStatusInactive = "You do not have an active subscription. Use /subscribe to get started."
	MsgGenericError   = "Something went wrong. Please try again later."
	MsgNotAuthorized  = "You are not authorized to use this command."
	MsgUnknownCommand = "Sorry, I don't understand that. Use /subscribe to see the available plans."
)

// Subscribe flow.
const (
	MsgNoPlansAvailable   = "There are currently no subscription plans available."
	MsgChoosePlan         = "Please choose a subscription plan:"
	MsgPlanButton         = "%s - $%.2f for %d days"
	MsgPlanSelected       = "You have selected the %s plan ($%.2f for %d days).\nHow would you like to pay?"
	MsgPlanNotFound       = "The selected plan does not exist. Please choose another plan with /subscribe."
	MsgPayOnlineButton    = "Pay Online"
	MsgPayDirectButton    = "Direct Payment"
	MsgOnlineUnavailable  = "Online payment is not available yet. Please use direct payment instead."
	MsgDirectInstructions = "Please transfer $%.2f to account %s and send a photo of your receipt here.\nAn admin will review it shortly."
	MsgReceiptForwarded   = "Thank you! Your receipt has been forwarded to the admins for review. You will be notified once it is processed."
	MsgReceiptUnexpected  = "I wasn't expecting a receipt from you. Use /subscribe to pick a plan first."
)

// Admin approval protocol.
const (
	MsgApprovalRequest  = "Please approve or deny the payment for %s:"
	MsgApproveButton    = "Approve"
	MsgDenyButton       = "Deny"
	MsgPaymentApproved  = "Your payment has been approved! Your subscription is now active until %s."
	MsgPaymentDenied    = "Your payment has been denied. Please contact an admin if you believe this is a mistake."
	MsgAdminApprovedTag = "Approved ✅ (payment for %s)"
	MsgAdminDeniedTag   = "Denied ❌ (payment for %s)"
	MsgDecisionTooLate  = "This payment has already been processed by another admin."
)

// Redemption codes.
const (
	MsgCodeGenerated     = "Code generated: %s\nIt grants %d day(s) of subscription."
	MsgGenerateCodeUsage = "Usage: /generate_code <days>"
	MsgCodeUsage         = "Usage: /redeem <code>"
	MsgCodeInvalid       = "That code is invalid or has already been used."
	MsgCodeRedeemed      = "Code accepted! Your subscription is now active until %s."
)

// Plan administration.
const (
	MsgAddPlanUsage  = "Usage: /add_plan <name>, <price>, <duration days>"
	MsgPlanAdded     = "Plan \"%s\" added: $%.2f for %d days."
	MsgNoPlansManage = "There are no plans to delete."
	MsgChooseDelete  = "Select a plan to delete:"
	MsgPlanDeleted   = "Plan \"%s\" has been removed from the catalog."
)

// Expiry sweep advisories.
const (
	MsgUserExpiryWarning  = "Your subscription expires in %d day(s), on %s. Renew with /subscribe to keep your access."
	MsgAdminExpiryWarning = "Subscription for %s expires in %d day(s), on %s."
	MsgAdminExpired       = "Subscription for %s expired on %s. Please remove them from the group."
)
