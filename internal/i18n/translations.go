package i18n

// Translations is the full set of UI strings for one locale.
type Translations struct {
	AppTitle          string `json:"appTitle"`
	SearchPlaceholder string `json:"searchPlaceholder"`

	HeroTitle       string `json:"heroTitle"`
	HeroDescription string `json:"heroDescription"`
	GetStarted      string `json:"getStarted"`
	Documentation   string `json:"documentation"`
	ReadMore        string `json:"readMore"`

	FooterTitle     string `json:"footerTitle"`
	FooterCopyright string `json:"footerCopyright"`

	SignIn   string `json:"signIn"`
	SignOut  string `json:"signOut"`
	Admin    string `json:"admin"`
	Settings string `json:"settings"`

	LastUpdated string `json:"lastUpdated"`

	SearchResults      string `json:"searchResults"`
	ShowingResultsFor  string `json:"showingResultsFor"`
	SearchingDocuments string `json:"searchingDocuments"`
	SearchError        string `json:"searchError"`
	NoResultsFound     string `json:"noResultsFound"`

	AdminLogin          string `json:"adminLogin"`
	Username            string `json:"username"`
	Password            string `json:"password"`
	Login               string `json:"login"`
	LoggingIn           string `json:"loggingIn"`
	BackToDocumentation string `json:"backToDocumentation"`
	LoginError          string `json:"loginError"`
	InvalidCredentials  string `json:"invalidCredentials"`
	FieldsRequired      string `json:"fieldsRequired"`

	ResponsiveSidebarDocumentation string `json:"responsiveSidebarDocumentation"`
	ResponsiveSidebarOpenMenu      string `json:"responsiveSidebarOpenMenu"`
	ResponsiveSidebarCloseMenu     string `json:"responsiveSidebarCloseMenu"`

	CustomModalInsertImage         string `json:"customModalInsertImage"`
	CustomModalUploadingImages     string `json:"customModalUploadingImages"`
	CustomModalImageManager        string `json:"customModalImageManager"`
	CustomModalUploadImages        string `json:"customModalUploadImages"`
	CustomModalMaxFilesError       string `json:"customModalMaxFilesError"`
	CustomModalMaxFilesPerUpload   string `json:"customModalMaxFilesPerUpload"`
	CustomModalLoadingImages       string `json:"customModalLoadingImages"`
	CustomModalNoImagesUploaded    string `json:"customModalNoImagesUploaded"`
	CustomModalInsertSelectedImage string `json:"customModalInsertSelectedImage"`
	CustomModalCancel              string `json:"customModalCancel"`
	CustomModalDeleteImageConfirm  string `json:"customModalDeleteImageConfirm"`
	CustomModalFailedToFetchImages string `json:"customModalFailedToFetchImages"`
	CustomModalFailedToUpload      string `json:"customModalFailedToUploadImages"`
	CustomModalFailedToDeleteImage string `json:"customModalFailedToDeleteImage"`

	AdminDocuments     string `json:"adminDocuments"`
	AdminNewDocument   string `json:"adminNewDocument"`
	AdminEditDocument  string `json:"adminEditDocument"`
	AdminTitle         string `json:"adminTitle"`
	AdminContent       string `json:"adminContent"`
	AdminSlug          string `json:"adminSlug"`
	AdminLanguage      string `json:"adminLanguage"`
	AdminPublished     string `json:"adminPublished"`
	AdminDraft         string `json:"adminDraft"`
	AdminSave          string `json:"adminSave"`
	AdminEdit          string `json:"adminEdit"`
	AdminDelete        string `json:"adminDelete"`
	AdminDeleteConfirm string `json:"adminDeleteConfirm"`
	AdminTotal         string `json:"adminTotal"`

	ChangePassword   string `json:"changePassword"`
	CurrentPassword  string `json:"currentPassword"`
	NewPassword      string `json:"newPassword"`
	PasswordTooShort string `json:"passwordTooShort"`
	PasswordUpdated  string `json:"passwordUpdated"`
	Loading          string `json:"loading"`
	PreviousPage     string `json:"previousPage"`
	NextPage         string `json:"nextPage"`
	DocumentNotFound string `json:"documentNotFound"`
	NoDocumentsYet   string `json:"noDocumentsYet"`
}

var catalog = map[Locale]*Translations{
	English: {
		AppTitle:          "MyApp Docs",
		SearchPlaceholder: "Search documents...",

		HeroTitle:       "MyApp Documentation",
		HeroDescription: "Comprehensive guides, API references, and examples to help you with the usage of MyApp.",
		GetStarted:      "Get Started",
		Documentation:   "Documentation",
		ReadMore:        "Read more →",

		FooterTitle:     "MyApp Docs",
		FooterCopyright: " 2025 MyApp. All rights reserved.",

		SignIn:   "Sign In",
		SignOut:  "Sign Out",
		Admin:    "Admin",
		Settings: "Settings",

		LastUpdated: "Last updated:",

		SearchResults:      "Search Results",
		ShowingResultsFor:  "Showing results for:",
		SearchingDocuments: "Searching documents...",
		SearchError:        "Failed to search documents. Please try again.",
		NoResultsFound:     "No documents found matching your search.",

		AdminLogin:          "Admin Login",
		Username:            "Username",
		Password:            "Password",
		Login:               "Login",
		LoggingIn:           "Logging in...",
		BackToDocumentation: "Back to Documentation",
		LoginError:          "An error occurred during login",
		InvalidCredentials:  "Invalid username or password",
		FieldsRequired:      "Username and password are required",

		ResponsiveSidebarDocumentation: "Documentation",
		ResponsiveSidebarOpenMenu:      "Open menu",
		ResponsiveSidebarCloseMenu:     "Close menu",

		CustomModalInsertImage:         "Insert Image",
		CustomModalUploadingImages:     "Uploading images...",
		CustomModalImageManager:        "Image Manager",
		CustomModalUploadImages:        "Upload Images (Max 5)",
		CustomModalMaxFilesError:       "You can only upload up to 5 files at once",
		CustomModalMaxFilesPerUpload:   "Maximum 5 files per upload",
		CustomModalLoadingImages:       "Loading images...",
		CustomModalNoImagesUploaded:    "No images uploaded yet.",
		CustomModalInsertSelectedImage: "Insert Selected Image",
		CustomModalCancel:              "Cancel",
		CustomModalDeleteImageConfirm:  "Are you sure you want to delete {0}?",
		CustomModalFailedToFetchImages: "Failed to fetch images",
		CustomModalFailedToUpload:      "Failed to upload images",
		CustomModalFailedToDeleteImage: "Failed to delete image",

		AdminDocuments:     "Documents",
		AdminNewDocument:   "New Document",
		AdminEditDocument:  "Edit Document",
		AdminTitle:         "Title",
		AdminContent:       "Content (Markdown)",
		AdminSlug:          "Slug",
		AdminLanguage:      "Language",
		AdminPublished:     "Published",
		AdminDraft:         "Draft",
		AdminSave:          "Save",
		AdminEdit:          "Edit",
		AdminDelete:        "Delete",
		AdminDeleteConfirm: "Are you sure you want to delete this document?",
		AdminTotal:         "Total",

		ChangePassword:   "Change Password",
		CurrentPassword:  "Current password",
		NewPassword:      "New password",
		PasswordTooShort: "New password must be at least 8 characters long",
		PasswordUpdated:  "Password updated successfully",
		Loading:          "Loading...",
		PreviousPage:     "Previous",
		NextPage:         "Next",
		DocumentNotFound: "Document not found",
		NoDocumentsYet:   "No documents yet.",
	},
	Japanese: {
		AppTitle:          "MyAppドキュメント",
		SearchPlaceholder: "ドキュメントを検索...",

		HeroTitle:       "MyAppドキュメンテーション",
		HeroDescription: "MyAppの使用方法に関する包括的なガイド、APIリファレンス、および例を提供します。",
		GetStarted:      "始めましょう",
		Documentation:   "ドキュメンテーション",
		ReadMore:        "続きを読む →",

		FooterTitle:     "MyAppドキュメント",
		FooterCopyright: " 2025 MyApp. 全著作権所有。",

		SignIn:   "ログイン",
		SignOut:  "ログアウト",
		Admin:    "管理者",
		Settings: "設定",

		LastUpdated: "最終更新日:",

		SearchResults:      "検索結果",
		ShowingResultsFor:  "検索ワード:",
		SearchingDocuments: "ドキュメントを検索中...",
		SearchError:        "ドキュメントの検索に失敗しました。もう一度お試しください。",
		NoResultsFound:     "検索に一致するドキュメントが見つかりませんでした。",

		AdminLogin:          "管理者ログイン",
		Username:            "ユーザー名",
		Password:            "パスワード",
		Login:               "ログイン",
		LoggingIn:           "ログイン中...",
		BackToDocumentation: "ドキュメントに戻る",
		LoginError:          "ログイン中にエラーが発生しました",
		InvalidCredentials:  "ユーザー名またはパスワードが無効です",
		FieldsRequired:      "ユーザー名とパスワードが必要です",

		ResponsiveSidebarDocumentation: "ドキュメント",
		ResponsiveSidebarOpenMenu:      "メニューを開く",
		ResponsiveSidebarCloseMenu:     "メニューを閉じる",

		CustomModalInsertImage:         "画像を挿入",
		CustomModalUploadingImages:     "画像をアップロード中...",
		CustomModalImageManager:        "画像マネージャー",
		CustomModalUploadImages:        "画像をアップロード（最大5枚）",
		CustomModalMaxFilesError:       "一度に最大5つのファイルしかアップロードできません",
		CustomModalMaxFilesPerUpload:   "アップロードごとに最大5ファイル",
		CustomModalLoadingImages:       "画像を読み込み中...",
		CustomModalNoImagesUploaded:    "まだ画像がアップロードされていません。",
		CustomModalInsertSelectedImage: "選択した画像を挿入",
		CustomModalCancel:              "キャンセル",
		CustomModalDeleteImageConfirm:  "{0}を削除してもよろしいですか？",
		CustomModalFailedToFetchImages: "画像の取得に失敗しました",
		CustomModalFailedToUpload:      "画像のアップロードに失敗しました",
		CustomModalFailedToDeleteImage: "画像の削除に失敗しました",

		AdminDocuments:     "ドキュメント一覧",
		AdminNewDocument:   "新規ドキュメント",
		AdminEditDocument:  "ドキュメントを編集",
		AdminTitle:         "タイトル",
		AdminContent:       "本文（Markdown）",
		AdminSlug:          "スラッグ",
		AdminLanguage:      "言語",
		AdminPublished:     "公開",
		AdminDraft:         "下書き",
		AdminSave:          "保存",
		AdminEdit:          "編集",
		AdminDelete:        "削除",
		AdminDeleteConfirm: "このドキュメントを削除してもよろしいですか？",
		AdminTotal:         "合計",

		ChangePassword:   "パスワード変更",
		CurrentPassword:  "現在のパスワード",
		NewPassword:      "新しいパスワード",
		PasswordTooShort: "新しいパスワードは8文字以上である必要があります",
		PasswordUpdated:  "パスワードを更新しました",
		Loading:          "読み込み中...",
		PreviousPage:     "前へ",
		NextPage:         "次へ",
		DocumentNotFound: "ドキュメントが見つかりません",
		NoDocumentsYet:   "ドキュメントはまだありません。",
	},
}

// For returns the translations of l, falling back to the default locale.
func For(l Locale) *Translations {
	if t, ok := catalog[l]; ok {
		return t
	}
	return catalog[Default]
}

// Lookup resolves a raw locale code to its translations.
func Lookup(code string) *Translations {
	return For(ParseOr(code, Default))
}
