package i18n

var catalogs = map[string]map[string]string{
	"pt": {
		"app.name":    "Photodesk",
		"app.tagline": "Gestão para fotógrafos",

		// navigation
		"nav.dashboard": "Painel",
		"nav.clients":   "Clientes",
		"nav.quotes":    "Orçamentos",
		"nav.jobs":      "Jobs",
		"nav.templates": "Templates de E-mail",
		"nav.portfolio": "Portfólio",
		"nav.logout":    "Sair",

		// actions
		"action.new":        "Novo",
		"action.save":       "Salvar",
		"action.saving":     "Salvando...",
		"action.cancel":     "Cancelar",
		"action.delete":     "Excluir",
		"action.edit":       "Editar",
		"action.search":     "Buscar...",
		"action.export_pdf": "Exportar PDF",
		"action.preview":    "Visualizar",
		"action.back":       "Voltar",

		// lists
		"list.empty":          "Nenhum registro cadastrado ainda.",
		"list.no_results":     "Nenhum resultado para a busca.",
		"list.load_failed":    "Não foi possível carregar os registros. Tente novamente.",
		"list.delete_failed":  "Não foi possível excluir o registro.",
		"list.confirm_delete": "Tem certeza que deseja excluir este registro? Esta ação não pode ser desfeita.",
		"list.total":          "Mostrando %d de %d",

		// fields
		"field.name":             "Nome",
		"field.email":            "E-mail",
		"field.phone":            "Telefone",
		"field.status":           "Status",
		"field.client":           "Cliente",
		"field.photography_type": "Tipo de Fotografia",
		"field.description":      "Descrição",
		"field.price":            "Valor (R$)",
		"field.title":            "Título",
		"field.date":             "Data",
		"field.checklist":        "Checklist (um item por linha)",
		"field.notes":            "Observações",
		"field.subject":          "Assunto",
		"field.body":             "Corpo",
		"field.type":             "Tipo",
		"field.image_url":        "URL da imagem",
		"field.category":         "Categoria",
		"field.order":            "Ordem",
		"field.password":         "Senha",
		"field.confirm_password": "Confirmar senha",
		"field.created_at":       "Criado em",

		// validation
		"required":         "Campo obrigatório",
		"min_length":       "Texto muito curto",
		"max_length":       "Texto muito longo",
		"min":              "Valor abaixo do mínimo",
		"invalid_number":   "Número inválido",
		"invalid_choice":   "Opção inválida",
		"invalid_email":    "E-mail inválido",
		"invalid_url":      "URL inválida",
		"invalid_date":     "Data inválida (use AAAA-MM-DD)",
		"invalid_template": "Template inválido",

		"client.name_required":   "Nome é obrigatório",
		"quote.client_required":  "Selecione um cliente",
		"quote.type_required":    "Tipo de fotografia é obrigatório",
		"quote.description_min":  "Descrição deve ter no mínimo 10 caracteres",
		"quote.price_min":        "Preço deve ser maior que zero",
		"job.title_required":     "Título é obrigatório",
		"job.client_required":    "Selecione um cliente",
		"job.date_required":      "Data é obrigatória",
		"template.body_invalid":  "O corpo contém uma tag Liquid inválida",
		"portfolio.url_required": "Informe uma URL de imagem válida",

		// forms
		"form.error":          "Corrija os campos destacados.",
		"form.save_failed":    "Erro ao salvar. Tente novamente.",
		"form.need_client":    "Você precisa cadastrar um cliente primeiro.",
		"form.create_client":  "Cadastrar cliente",
		"form.select_client":  "Selecione um cliente",
		"form.select_type":    "Selecione o tipo",
		"form.optional":       "opcional",
		"form.preview_client": "Visualizar com o cliente",

		// auth
		"auth.login_title":         "Entrar",
		"auth.login_subtitle":      "Acesse sua conta",
		"auth.signup_title":        "Criar conta",
		"auth.signup_subtitle":     "Comece a organizar seu negócio",
		"auth.login":               "Entrar",
		"auth.signup":              "Cadastrar",
		"auth.no_account":          "Não tem uma conta?",
		"auth.has_account":         "Já tem uma conta?",
		"auth.invalid_credentials": "E-mail ou senha incorretos.",
		"auth.already_registered":  "Este e-mail já está cadastrado.",
		"auth.password_mismatch":   "As senhas não coincidem.",
		"auth.password_too_short":  "A senha deve ter pelo menos 6 caracteres.",
		"auth.email_required":      "Informe seu e-mail.",
		"auth.not_configured":      "⚠️ Supabase não configurado. Defina SUPABASE_URL e SUPABASE_ANON_KEY no arquivo .env e reinicie o servidor.",
		"auth.login_failed":        "Erro ao fazer login. Verifique sua conexão e tente novamente.",
		"auth.signup_failed":       "Erro ao criar conta. Verifique sua conexão e tente novamente.",
		"auth.confirm_email":       "Conta criada! Verifique seu e-mail para confirmar o cadastro e depois faça login.",

		// pages
		"dashboard.title":     "Painel",
		"dashboard.welcome":   "Bem-vindo",
		"dashboard.clients":   "Clientes",
		"dashboard.quotes":    "Orçamentos",
		"dashboard.jobs":      "Jobs",
		"dashboard.portfolio": "Itens no Portfólio",
		"clients.title":       "Clientes",
		"clients.new":         "Novo Cliente",
		"clients.edit":        "Editar Cliente",
		"quotes.title":        "Orçamentos",
		"quotes.new":          "Novo Orçamento",
		"quotes.open":         "Em aberto",
		"quotes.accepted":     "Aceitos",
		"quotes.rejected":     "Rejeitados",
		"quotes.create_job":   "Criar job",
		"jobs.title":          "Jobs",
		"jobs.new":            "Novo Job",
		"templates.title":     "Templates de E-mail",
		"templates.new":       "Novo Template",
		"templates.preview":   "Pré-visualização",
		"templates.variables": "Variáveis disponíveis",
		"portfolio.title":     "Portfólio",
		"portfolio.new":       "Novo Item",
		"portfolio.public":    "Ver página pública",
		"portfolio.empty":     "Nenhum trabalho publicado ainda.",
		"error.not_found":     "Página não encontrada.",
		"error.internal":      "Erro interno. Tente novamente mais tarde.",
		"error.pdf_failed":    "Não foi possível gerar o PDF.",
	},
	"en": {
		"app.name":    "Photodesk",
		"app.tagline": "Business tools for photographers",

		"nav.dashboard": "Dashboard",
		"nav.clients":   "Clients",
		"nav.quotes":    "Quotes",
		"nav.jobs":      "Jobs",
		"nav.templates": "E-mail Templates",
		"nav.portfolio": "Portfolio",
		"nav.logout":    "Sign out",

		"action.new":        "New",
		"action.save":       "Save",
		"action.saving":     "Saving...",
		"action.cancel":     "Cancel",
		"action.delete":     "Delete",
		"action.edit":       "Edit",
		"action.search":     "Search...",
		"action.export_pdf": "Export PDF",
		"action.preview":    "Preview",
		"action.back":       "Back",

		"list.empty":          "Nothing here yet.",
		"list.no_results":     "No results for this search.",
		"list.load_failed":    "Could not load the records. Please try again.",
		"list.delete_failed":  "Could not delete the record.",
		"list.confirm_delete": "Are you sure you want to delete this record? This cannot be undone.",
		"list.total":          "Showing %d of %d",

		"field.name":             "Name",
		"field.email":            "E-mail",
		"field.phone":            "Phone",
		"field.status":           "Status",
		"field.client":           "Client",
		"field.photography_type": "Photography type",
		"field.description":      "Description",
		"field.price":            "Price (R$)",
		"field.title":            "Title",
		"field.date":             "Date",
		"field.checklist":        "Checklist (one item per line)",
		"field.notes":            "Notes",
		"field.subject":          "Subject",
		"field.body":             "Body",
		"field.type":             "Type",
		"field.image_url":        "Image URL",
		"field.category":         "Category",
		"field.order":            "Order",
		"field.password":         "Password",
		"field.confirm_password": "Confirm password",
		"field.created_at":       "Created",

		"required":         "Required",
		"min_length":       "Too short",
		"max_length":       "Too long",
		"min":              "Below the minimum",
		"invalid_number":   "Invalid number",
		"invalid_choice":   "Invalid choice",
		"invalid_email":    "Invalid e-mail",
		"invalid_url":      "Invalid URL",
		"invalid_date":     "Invalid date (use YYYY-MM-DD)",
		"invalid_template": "Invalid template",

		"client.name_required":   "Name is required",
		"quote.client_required":  "Select a client",
		"quote.type_required":    "Photography type is required",
		"quote.description_min":  "Description must be at least 10 characters",
		"quote.price_min":        "Price must not be negative",
		"job.title_required":     "Title is required",
		"job.client_required":    "Select a client",
		"job.date_required":      "Date is required",
		"template.body_invalid":  "The body contains an invalid Liquid tag",
		"portfolio.url_required": "Enter a valid image URL",

		"form.error":          "Please fix the highlighted fields.",
		"form.save_failed":    "Could not save. Please try again.",
		"form.need_client":    "You need to add a client first.",
		"form.create_client":  "Add client",
		"form.select_client":  "Select a client",
		"form.select_type":    "Select a type",
		"form.optional":       "optional",
		"form.preview_client": "Preview with client",

		"auth.login_title":         "Sign in",
		"auth.login_subtitle":      "Access your account",
		"auth.signup_title":        "Create account",
		"auth.signup_subtitle":     "Start organizing your business",
		"auth.login":               "Sign in",
		"auth.signup":              "Sign up",
		"auth.no_account":          "No account yet?",
		"auth.has_account":         "Already registered?",
		"auth.invalid_credentials": "Wrong e-mail or password.",
		"auth.already_registered":  "This e-mail is already registered.",
		"auth.password_mismatch":   "Passwords do not match.",
		"auth.password_too_short":  "Password must be at least 6 characters.",
		"auth.email_required":      "Enter your e-mail.",
		"auth.not_configured":      "⚠️ Supabase is not configured. Set SUPABASE_URL and SUPABASE_ANON_KEY in the .env file and restart the server.",
		"auth.login_failed":        "Sign in failed. Check your connection and try again.",
		"auth.signup_failed":       "Sign up failed. Check your connection and try again.",
		"auth.confirm_email":       "Account created! Check your e-mail to confirm it, then sign in.",

		"dashboard.title":     "Dashboard",
		"dashboard.welcome":   "Welcome",
		"dashboard.clients":   "Clients",
		"dashboard.quotes":    "Quotes",
		"dashboard.jobs":      "Jobs",
		"dashboard.portfolio": "Portfolio items",
		"clients.title":       "Clients",
		"clients.new":         "New Client",
		"clients.edit":        "Edit Client",
		"quotes.title":        "Quotes",
		"quotes.new":          "New Quote",
		"quotes.open":         "Open",
		"quotes.accepted":     "Accepted",
		"quotes.rejected":     "Rejected",
		"quotes.create_job":   "Create job",
		"jobs.title":          "Jobs",
		"jobs.new":            "New Job",
		"templates.title":     "E-mail Templates",
		"templates.new":       "New Template",
		"templates.preview":   "Preview",
		"templates.variables": "Available variables",
		"portfolio.title":     "Portfolio",
		"portfolio.new":       "New Item",
		"portfolio.public":    "View public page",
		"portfolio.empty":     "No work published yet.",
		"error.not_found":     "Page not found.",
		"error.internal":      "Internal error. Please try again later.",
		"error.pdf_failed":    "Could not generate the PDF.",
	},
}
