package i18n

var english = map[string]string{
	GreetingMorning:   "Good morning",
	GreetingAfternoon: "Good afternoon",
	GreetingEvening:   "Good evening",
	GreetingLine:      "%s, %s!",
	DefaultUserName:   "User",

	StatsLine:      "Total: %d  Completed: %d  Pending: %d",
	NoTasks:        "No tasks yet. Add one!",
	SkippedTasks:   "%d invalid task(s) skipped",
	TaskAdded:      "Task added",
	TaskToggled:    "Task updated",
	TaskDeleted:    "Task deleted",
	TaskDue:        "due %s",
	TaskNotFound:   "Task number out of range: %d",
	LoadingTasks:   "Loading tasks...",
	NewTaskTitle:   "New task",
	ConfirmRemove:  "Delete this task?",
	StoreLoadErr:   "Could not load tasks",
	StoreCreateErr: "Could not save the task",
	StoreUpdateErr: "Could not update the task",
	StoreDeleteErr: "Could not delete the task",

	QuoteTitle:       "Quote of the day",
	QuoteUnavailable: "Unable to load quote",
	QuoteLoading:     "Loading quote...",

	FieldEmail:           "Email",
	FieldPassword:        "Password",
	FieldConfirmPassword: "Confirm password",
	FieldName:            "Name (optional)",
	FieldCurrentPassword: "Current password",
	FieldNewPassword:     "New password",

	ValFillAllFields:   "Please fill in all fields",
	ValTitleRequired:   "Please enter a task title",
	ValEmailRequired:   "Please enter your email",
	ValInvalidEmail:    "Please enter a valid email",
	ValPasswordShort:   "Password must be at least 6 characters",
	ValPasswordsDiffer: "Passwords don't match",
	ValSamePassword:    "New password must be different from the current one",
	ValNameShort:       "Name must be at least 2 characters",
	ValInvalidDate:     "Invalid due date: %s",

	AuthInvalidCredentials:   "Invalid email or password",
	AuthEmailInUse:           "This email is already in use",
	AuthWeakPassword:         "Password is too weak",
	AuthInvalidEmail:         "Invalid email",
	AuthWrongCurrentPassword: "Current password is incorrect",
	AuthRequiresRecentLogin:  "For security, please sign in again",
	AuthNoActiveSession:      "No user signed in",
	AuthUnknown:              "Something went wrong: %s",
	AuthNotSignedIn:          "Not signed in (run: planify login)",
	AuthAlreadySignedIn:      "Already signed in as %s",

	Welcome:         "Welcome, %s!",
	AccountCreated:  "Account created successfully!",
	ResetSent:       "Password reset email sent to %s",
	PasswordChanged: "Password changed successfully!",
	AccountDeleted:  "Account deleted",
	SignedOut:       "Signed out",
	ConfirmDelete:   "Delete your account? This cannot be undone.",
	ConfirmSignOut:  "Sign out?",
	Cancelled:       "Cancelled",
	ConfirmYes:      "Yes",
	ConfirmNo:       "No",
	ConfirmRequired: "Confirmation required (use --yes)",

	ReminderTitle:     "Task reminder",
	ReminderBody:      "You have pending tasks!",
	ReminderScheduled: "Reminder scheduled",
	ReminderNoTasks:   "No tasks to remind you about",
	ReminderDisabled:  "Notifications are not available",

	ThemeCurrent: "Theme: %s",
	ThemeLight:   "light",
	ThemeDark:    "dark",

	LocaleCurrent:     "Language: %s",
	LocaleUnsupported: "Unsupported language: %s",

	HomeHelp: "space toggle • d delete • a add • t theme • r reload • n remind • q quit",
}

var brazilianPortuguese = map[string]string{
	GreetingMorning:   "Bom dia",
	GreetingAfternoon: "Boa tarde",
	GreetingEvening:   "Boa noite",
	GreetingLine:      "%s, %s!",
	DefaultUserName:   "Usuário",

	StatsLine:      "Total: %d  Concluídas: %d  Pendentes: %d",
	NoTasks:        "Nenhuma tarefa ainda. Adicione uma!",
	SkippedTasks:   "%d tarefa(s) inválida(s) ignorada(s)",
	TaskAdded:      "Tarefa adicionada",
	TaskToggled:    "Tarefa atualizada",
	TaskDeleted:    "Tarefa excluída",
	TaskDue:        "vence %s",
	TaskNotFound:   "Número de tarefa fora do intervalo: %d",
	LoadingTasks:   "Carregando tarefas...",
	NewTaskTitle:   "Nova tarefa",
	ConfirmRemove:  "Deseja realmente excluir a tarefa?",
	StoreLoadErr:   "Não foi possível carregar as tarefas",
	StoreCreateErr: "Não foi possível salvar a tarefa",
	StoreUpdateErr: "Não foi possível atualizar a tarefa",
	StoreDeleteErr: "Não foi possível excluir a tarefa",

	QuoteTitle:       "Frase do dia",
	QuoteUnavailable: "Não foi possível carregar a frase",
	QuoteLoading:     "Carregando frase...",

	FieldEmail:           "E-mail",
	FieldPassword:        "Senha",
	FieldConfirmPassword: "Confirmar senha",
	FieldName:            "Nome (opcional)",
	FieldCurrentPassword: "Senha atual",
	FieldNewPassword:     "Nova senha",

	ValFillAllFields:   "Preencha todos os campos",
	ValTitleRequired:   "Digite o título da tarefa",
	ValEmailRequired:   "Digite seu e-mail",
	ValInvalidEmail:    "Digite um e-mail válido",
	ValPasswordShort:   "A senha deve ter pelo menos 6 caracteres",
	ValPasswordsDiffer: "As senhas não coincidem",
	ValSamePassword:    "A nova senha deve ser diferente da atual",
	ValNameShort:       "O nome deve ter pelo menos 2 caracteres",
	ValInvalidDate:     "Data de vencimento inválida: %s",

	AuthInvalidCredentials:   "E-mail ou senha inválidos",
	AuthEmailInUse:           "Este e-mail já está em uso",
	AuthWeakPassword:         "A senha é muito fraca",
	AuthInvalidEmail:         "E-mail inválido",
	AuthWrongCurrentPassword: "Senha atual incorreta",
	AuthRequiresRecentLogin:  "Por segurança, faça login novamente",
	AuthNoActiveSession:      "Nenhum usuário logado",
	AuthUnknown:              "Ocorreu um erro: %s",
	AuthNotSignedIn:          "Não conectado (execute: planify login)",
	AuthAlreadySignedIn:      "Já conectado como %s",

	Welcome:         "Bem-vindo(a), %s!",
	AccountCreated:  "Conta criada com sucesso!",
	ResetSent:       "E-mail de redefinição enviado para %s",
	PasswordChanged: "Senha alterada com sucesso!",
	AccountDeleted:  "Conta excluída",
	SignedOut:       "Você saiu",
	ConfirmDelete:   "Excluir sua conta? Esta ação não pode ser desfeita.",
	ConfirmSignOut:  "Deseja sair?",
	Cancelled:       "Cancelado",
	ConfirmYes:      "Sim",
	ConfirmNo:       "Não",
	ConfirmRequired: "Confirmação necessária (use --yes)",

	ReminderTitle:     "Lembrete de tarefas",
	ReminderBody:      "Você tem tarefas pendentes!",
	ReminderScheduled: "Lembrete agendado",
	ReminderNoTasks:   "Nenhuma tarefa para lembrar",
	ReminderDisabled:  "Notificações indisponíveis",

	ThemeCurrent: "Tema: %s",
	ThemeLight:   "claro",
	ThemeDark:    "escuro",

	LocaleCurrent:     "Idioma: %s",
	LocaleUnsupported: "Idioma não suportado: %s",

	HomeHelp: "espaço marcar • d excluir • a adicionar • t tema • r recarregar • n lembrar • q sair",
}
