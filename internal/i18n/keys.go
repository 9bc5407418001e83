package i18n

// Message keys. Every user-facing string is looked up by one of these.
const (
	GreetingMorning   = "greeting.morning"
	GreetingAfternoon = "greeting.afternoon"
	GreetingEvening   = "greeting.evening"
	GreetingLine      = "greeting.line"
	DefaultUserName   = "user.default"

	StatsLine      = "tasks.stats"
	NoTasks        = "tasks.empty"
	SkippedTasks   = "tasks.skipped"
	TaskAdded      = "tasks.added"
	TaskToggled    = "tasks.toggled"
	TaskDeleted    = "tasks.deleted"
	TaskDue        = "tasks.due"
	TaskNotFound   = "tasks.not_found"
	LoadingTasks   = "tasks.loading"
	NewTaskTitle   = "tasks.new_title"
	ConfirmRemove  = "tasks.confirm_remove"
	StoreLoadErr   = "store.load"
	StoreCreateErr = "store.create"
	StoreUpdateErr = "store.update"
	StoreDeleteErr = "store.delete"

	QuoteTitle       = "quote.title"
	QuoteUnavailable = "quote.unavailable"
	QuoteLoading     = "quote.loading"

	FieldEmail           = "field.email"
	FieldPassword        = "field.password"
	FieldConfirmPassword = "field.confirm_password"
	FieldName            = "field.name"
	FieldCurrentPassword = "field.current_password"
	FieldNewPassword     = "field.new_password"

	ValFillAllFields   = "validation.fill_all"
	ValTitleRequired   = "validation.title_required"
	ValEmailRequired   = "validation.email_required"
	ValInvalidEmail    = "validation.invalid_email"
	ValPasswordShort   = "validation.password_short"
	ValPasswordsDiffer = "validation.passwords_differ"
	ValSamePassword    = "validation.same_password"
	ValNameShort       = "validation.name_short"
	ValInvalidDate     = "validation.invalid_date"

	AuthInvalidCredentials   = "auth.invalid_credentials"
	AuthEmailInUse           = "auth.email_in_use"
	AuthWeakPassword         = "auth.weak_password"
	AuthInvalidEmail         = "auth.invalid_email"
	AuthWrongCurrentPassword = "auth.wrong_current_password"
	AuthRequiresRecentLogin  = "auth.requires_recent_login"
	AuthNoActiveSession      = "auth.no_active_session"
	AuthUnknown              = "auth.unknown"
	AuthNotSignedIn          = "auth.not_signed_in"
	AuthAlreadySignedIn      = "auth.already_signed_in"

	Welcome         = "account.welcome"
	AccountCreated  = "account.created"
	ResetSent       = "account.reset_sent"
	PasswordChanged = "account.password_changed"
	AccountDeleted  = "account.deleted"
	SignedOut       = "account.signed_out"
	ConfirmDelete   = "account.confirm_delete"
	ConfirmSignOut  = "account.confirm_sign_out"
	Cancelled       = "account.cancelled"
	ConfirmYes      = "confirm.yes"
	ConfirmNo       = "confirm.no"
	ConfirmRequired = "confirm.required"

	ReminderTitle     = "reminder.title"
	ReminderBody      = "reminder.body"
	ReminderScheduled = "reminder.scheduled"
	ReminderNoTasks   = "reminder.no_tasks"
	ReminderDisabled  = "reminder.disabled"

	ThemeCurrent = "theme.current"
	ThemeLight   = "theme.light"
	ThemeDark    = "theme.dark"

	LocaleCurrent     = "locale.current"
	LocaleUnsupported = "locale.unsupported"

	HomeHelp = "home.help"
)
