package constants

// Статусы заданий, как их отдает и принимает бэкенд MontajPro.
// Клиент не придумывает свои значения: это дословно строки протокола.
const (
	STATUS_DRAFT       = "draft"       // Черновик логиста, еще не опубликован
	STATUS_NEW         = "new"         // Опубликовано, видно монтажникам (broadcast)
	STATUS_ASSIGNED    = "assigned"    // Индивидуальное назначение, ждет принятия
	STATUS_ACCEPTED    = "accepted"    // Монтажник принял задание
	STATUS_ON_THE_ROAD = "on_the_road" // Монтажник выехал
	STATUS_ON_SITE     = "on_site"     // Монтажник на объекте
	STATUS_STARTED     = "started"     // Работы начаты
	STATUS_INSPECTION  = "inspection"  // Отчет сдан, идет проверка
	STATUS_COMPLETED   = "completed"   // Задание завершено логистом
	STATUS_RETURNED    = "returned"    // Возвращено на доработку
	STATUS_ARCHIVED    = "archived"    // В архиве (можно вернуть в черновики)
)

// Роли пользователей системы.
const (
	ROLE_ADMIN     = "admin"
	ROLE_LOGIST    = "logist"
	ROLE_MONTAJNIK = "montajnik"
	ROLE_TECHSUPP  = "tech_supp"
)

// Статусы согласования отчета. Логист и техподдержка согласуют независимо.
const (
	APPROVAL_WAITING  = "waiting"
	APPROVAL_APPROVED = "approved"
	APPROVAL_REJECTED = "rejected"
)

// Типы назначения задания.
const (
	ASSIGNMENT_BROADCAST  = "broadcast"  // Видно всем монтажникам
	ASSIGNMENT_INDIVIDUAL = "individual" // Назначено конкретному монтажнику
)

// Состояния диалога (FSM) для многошаговых сценариев ввода.
const (
	STATE_IDLE = "idle"

	// Создание/редактирование черновика логистом
	STATE_DRAFT_COMPANY      = "draft_company"
	STATE_DRAFT_CONTACT      = "draft_contact"
	STATE_DRAFT_VEHICLE      = "draft_vehicle"
	STATE_DRAFT_GOS_NUMBER   = "draft_gos_number"
	STATE_DRAFT_DATE         = "draft_date"
	STATE_DRAFT_LOCATION     = "draft_location"
	STATE_DRAFT_COMMENT      = "draft_comment"
	STATE_DRAFT_CLIENT_PRICE = "draft_client_price"
	STATE_DRAFT_REWARD       = "draft_reward"
	STATE_DRAFT_EQUIPMENT    = "draft_equipment"
	STATE_DRAFT_WORK_TYPES   = "draft_work_types"
	STATE_DRAFT_ASSIGNMENT   = "draft_assignment"
	STATE_DRAFT_CONFIRM      = "draft_confirm"

	STATE_TASK_FILTER_SEARCH   = "task_filter_search"
	STATE_TASK_RETURN_COMMENT  = "task_return_comment"
	STATE_TASK_EDIT_COMMENT    = "task_edit_comment"
	STATE_REVIEW_REJECT_REASON = "review_reject_reason"

	// Отчет монтажника
	STATE_REPORT_TEXT   = "report_text"
	STATE_REPORT_PHOTOS = "report_photos"

	// Администрирование справочников
	STATE_ADMIN_USER_LOGIN      = "admin_user_login"
	STATE_ADMIN_USER_NAME       = "admin_user_name"
	STATE_ADMIN_USER_LASTNAME   = "admin_user_lastname"
	STATE_ADMIN_USER_ROLE       = "admin_user_role"
	STATE_ADMIN_EQUIPMENT_NAME  = "admin_equipment_name"
	STATE_ADMIN_EQUIPMENT_PRICE = "admin_equipment_price"
	STATE_ADMIN_EQUIPMENT_EDIT  = "admin_equipment_edit_price"
	STATE_ADMIN_WORKTYPE_NAME   = "admin_worktype_name"
	STATE_ADMIN_WORKTYPE_PRICE  = "admin_worktype_price"
)

// Префиксы callback data. Общий формат: <префикс><id> либо <префикс><id>_<доп>.
const (
	CALLBACK_PREFIX_TASK_VIEW      = "task_view_"
	CALLBACK_PREFIX_TASK_ARCHIVE   = "task_archive_"
	CALLBACK_PREFIX_TASK_UNARCHIVE = "task_unarchive_"
	CALLBACK_PREFIX_TASK_COMPLETE  = "task_complete_"
	CALLBACK_PREFIX_TASK_RETURN    = "task_return_"
	CALLBACK_PREFIX_TASK_SHARE     = "task_share_"
	CALLBACK_PREFIX_TASK_ACCEPT    = "task_accept_"
	CALLBACK_PREFIX_TASK_REJECT    = "task_reject_"
	CALLBACK_PREFIX_TASK_STATUS    = "task_status_" // task_status_<id>_<новый статус>
	CALLBACK_PREFIX_TASK_REPORT    = "task_report_"
	CALLBACK_PREFIX_TASK_HISTORY   = "task_history_"
	CALLBACK_PREFIX_DRAFT_VIEW     = "draft_view_"
	CALLBACK_PREFIX_DRAFT_PUBLISH  = "draft_publish_"
	CALLBACK_PREFIX_DRAFT_DELETE   = "draft_delete_"
	CALLBACK_PREFIX_REVIEW_VIEW    = "review_view_" // review_view_<taskID>_<reportID>
	CALLBACK_PREFIX_REVIEW_OK      = "review_ok_"   // review_ok_<taskID>_<reportID>
	CALLBACK_PREFIX_REVIEW_NO      = "review_no_"   // review_no_<taskID>_<reportID>
	CALLBACK_PREFIX_TASK_FILES     = "task_files_"
	CALLBACK_PREFIX_TASK_EDIT      = "task_edit_"    // правка комментария задания
	CALLBACK_PREFIX_TASK_REPORTS   = "task_reports_" // просмотр отчетов задания
	CALLBACK_PREFIX_TASK_PHONE     = "task_phone_"   // телефон контактного лица
	CALLBACK_PREFIX_USER_TOGGLE    = "user_toggle_"
	CALLBACK_PREFIX_USER_ROLE      = "user_role_" // выбор роли при создании пользователя
	CALLBACK_PREFIX_EQUIP_DELETE   = "eq_del_"
	CALLBACK_PREFIX_EQUIP_PRICE    = "eq_price_" // правка цены позиции
	CALLBACK_PREFIX_WORKTYPE_DEL   = "wt_del_"
	CALLBACK_PREFIX_WORKTYPE_FLAG  = "wt_flag_" // переключение флага техпроверки
	CALLBACK_PREFIX_PAGE           = "page_" // page_<экран>_<номер>

	// Шаги сборки черновика
	CALLBACK_PREFIX_DRAFT_EDIT     = "draft_edit_"
	CALLBACK_PREFIX_DRAFT_COMPANY  = "dr_co_"
	CALLBACK_PREFIX_DRAFT_CONTACT  = "dr_ct_"
	CALLBACK_PREFIX_DRAFT_EQUIP    = "dr_eq_" // повторное нажатие увеличивает количество
	CALLBACK_PREFIX_DRAFT_WORKTYPE = "dr_wt_"
	CALLBACK_PREFIX_DRAFT_ASSIGNEE = "dr_as_"
)

// Команды меню без параметров.
const (
	CALLBACK_BACK_MAIN        = "back_main"
	CALLBACK_LOGOUT           = "logout"
	CALLBACK_PROFILE          = "profile"
	CALLBACK_TASKS_ACTIVE     = "tasks_active"
	CALLBACK_TASKS_HISTORY    = "tasks_history"
	CALLBACK_TASKS_AVAILABLE  = "tasks_available"
	CALLBACK_TASKS_ASSIGNED   = "tasks_assigned"
	CALLBACK_TASKS_MINE       = "tasks_mine"
	CALLBACK_DRAFTS           = "drafts"
	CALLBACK_DRAFT_NEW        = "draft_new"
	CALLBACK_REVIEWS          = "reviews"
	CALLBACK_ADMIN_USERS      = "admin_users"
	CALLBACK_ADMIN_EQUIPMENT  = "admin_equipment"
	CALLBACK_ADMIN_WORK_TYPES = "admin_work_types"
	CALLBACK_EXPORT_XLSX      = "export_xlsx"
	CALLBACK_TASK_SEARCH      = "task_search"
	CALLBACK_NOOP             = "noop"

	CALLBACK_ADMIN_USER_NEW     = "admin_user_new"
	CALLBACK_ADMIN_EQUIP_NEW    = "admin_equip_new"
	CALLBACK_ADMIN_WORKTYPE_NEW = "admin_worktype_new"

	CALLBACK_DRAFT_SKIP         = "dr_skip"
	CALLBACK_DRAFT_BACK         = "dr_back"
	CALLBACK_DRAFT_STEP_DONE    = "dr_done" // завершить выбор оборудования/работ
	CALLBACK_DRAFT_BROADCAST    = "dr_broadcast"
	CALLBACK_DRAFT_PHOTO_TOGGLE = "dr_photo"
	CALLBACK_DRAFT_SAVE         = "dr_save"
	CALLBACK_DRAFT_PUBLISH_NOW  = "dr_pub" // сохранить и сразу опубликовать
	CALLBACK_DRAFT_CANCEL       = "dr_cancel"

	CALLBACK_REPORT_SUBMIT = "report_submit"
	CALLBACK_REPORT_CANCEL = "report_cancel"

	CALLBACK_WORKTYPE_TECH_YES = "wt_tech_yes"
	CALLBACK_WORKTYPE_TECH_NO  = "wt_tech_no"
)

// Лимиты, повторяющие ограничения веб-клиента.
const (
	MAX_REPORT_PHOTOS = 10
	PAGE_SIZE         = 5 // Заданий на страницу списка в чате
)

// StatusDisplayMap — человекочитаемые названия статусов.
var StatusDisplayMap = map[string]string{
	STATUS_DRAFT:       "Черновик",
	STATUS_NEW:         "Новое",
	STATUS_ASSIGNED:    "Назначено",
	STATUS_ACCEPTED:    "Принято",
	STATUS_ON_THE_ROAD: "В пути",
	STATUS_ON_SITE:     "На объекте",
	STATUS_STARTED:     "Работы начаты",
	STATUS_INSPECTION:  "На проверке",
	STATUS_COMPLETED:   "Завершено",
	STATUS_RETURNED:    "На доработке",
	STATUS_ARCHIVED:    "В архиве",
}

// StatusEmojiMap — значки статусов для списков.
var StatusEmojiMap = map[string]string{
	STATUS_DRAFT:       "📝",
	STATUS_NEW:         "🆕",
	STATUS_ASSIGNED:    "📌",
	STATUS_ACCEPTED:    "🤝",
	STATUS_ON_THE_ROAD: "🚗",
	STATUS_ON_SITE:     "📍",
	STATUS_STARTED:     "🔧",
	STATUS_INSPECTION:  "🔎",
	STATUS_COMPLETED:   "✅",
	STATUS_RETURNED:    "↩️",
	STATUS_ARCHIVED:    "🗄",
}

// RoleDisplayMap — названия ролей для шапки и профиля.
var RoleDisplayMap = map[string]string{
	ROLE_ADMIN:     "Администратор",
	ROLE_LOGIST:    "Логист",
	ROLE_MONTAJNIK: "Монтажник",
	ROLE_TECHSUPP:  "Техподдержка",
}

// ApprovalDisplayMap — статусы согласования отчета.
var ApprovalDisplayMap = map[string]string{
	APPROVAL_WAITING:  "⏳ Ожидает",
	APPROVAL_APPROVED: "✅ Согласовано",
	APPROVAL_REJECTED: "❌ Отклонено",
}
