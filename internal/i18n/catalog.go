package i18n

// catalog holds every user-facing string, keyed by language then message key.
// English is the reference set; other languages fall back to it per key.
var catalog = map[string]map[string]string{
	"en": {
		"welcome": "👋 Welcome to YouTube Thumbnail Extractor!\n\n" +
			"Send me any YouTube link or video ID, and I'll send you all available thumbnails.\n\n" +
			"📝 Commands:\n" +
			"/start - Start the bot\n" +
			"/help - Show help\n" +
			"/stats - Your statistics\n" +
			"/referral - Get your referral link\n" +
			"/premium - Premium info\n" +
			"/language - Change language",
		"welcome_referred": "👋 Welcome! You were referred by user {referrer_id}.\n" +
			"You both get {bonus} bonus requests! 🎁\n\n" +
			"Send me any YouTube link or video ID to get started.",
		"help": "🔍 How to use:\n\n" +
			"1. Send me a YouTube link in any format:\n" +
			"   • youtube.com/watch?v=VIDEO_ID\n" +
			"   • youtu.be/VIDEO_ID\n" +
			"   • youtube.com/shorts/VIDEO_ID\n" +
			"   • Or just the video ID\n\n" +
			"2. I'll send you all available thumbnails!\n\n" +
			"💎 Premium features:\n" +
			"• Higher daily limits\n" +
			"• Priority processing\n\n" +
			"Use /premium to upgrade!",
		"stats": "📊 Your Statistics:\n\n" +
			"Daily requests used: {used}/{limit}\n" +
			"Total referrals: {referrals}\n" +
			"Premium status: {premium}\n" +
			"Member since: {joined}",
		"referral_info": "🎁 Referral Program:\n\n" +
			"Share your link and earn bonuses!\n" +
			"Get {required} referrals for free premium! 💎\n\n" +
			"Your referral link:\n{link}\n\n" +
			"Total referrals: {count}",
		"premium_info": "💎 Premium Benefits:\n\n" +
			"✅ {premium_limit} requests per day\n" +
			"✅ Priority processing\n\n" +
			"🎁 Get premium FREE by referring {required} users!\n" +
			"Use /referral to get your link.\n\n" +
			"Current referrals: {count}/{required}",
		"processing":      "⏳ Processing your request...",
		"thumbnails_sent": "✅ Sent {count} thumbnail(s)!\n\nNeed more? Send another link!",
		"no_thumbnails":   "❌ No thumbnails could be sent.",
		"invalid_link":    "❌ Invalid YouTube link or video ID. Please try again.",
		"limit_reached": "⚠️ Daily limit reached ({limit} requests).\n" +
			"Upgrade to premium for {premium_limit} requests per day!\n" +
			"Or refer friends to get bonus requests: /referral",
		"flood_warning":    "⚠️ Please slow down! Wait {seconds} seconds before trying again.",
		"error":            "❌ An error occurred. Please try again later.",
		"premium_granted":  "🎉 Congratulations! You've earned premium status! 💎",
		"language_changed": "✅ Language changed to: {language}",
		"choose_language":  "🌍 Choose your language:",
		"main_menu":        "🏠 Main Menu\n\nChoose an option below:",
		"send_video_link":  "📹 Send me a YouTube link or video ID!",
		"user_banned":      "🚫 You have been banned from using this bot.",
		"maintenance":      "🛠 The bot is under maintenance. Please try again later.",
		"force_join":       "📢 Please join {channel} to use this bot, then try again.",
		"cancelled":        "✅ Cancelled. Back to the main menu.",

		"payment_instructions": "💰 Payment Instructions:\n\n" +
			"1. Send payment to: {account}\n" +
			"2. Take a screenshot of the payment confirmation\n" +
			"3. Upload the screenshot here\n" +
			"4. Wait for admin approval",
		"send_payment_screenshot": "📸 Please send your payment screenshot.\n\n" +
			"Make sure the screenshot clearly shows the transaction details.",
		"payment_proof_received": "✅ Payment proof received!\n\n" +
			"Your payment is under review. You'll be notified once approved.",
		"payment_approved": "🎉 Congratulations!\n\n" +
			"Your payment has been approved!\n" +
			"You now have premium access for {days} days. Enjoy! 💎",
		"payment_rejected": "❌ Payment Rejected\n\n" +
			"Your payment proof was rejected. Please contact admin for details.",

		"support_menu":        "🎧 Support\n\nSearch the FAQ or open a ticket:",
		"faq_prompt":          "🔎 Type a few words describing your problem:",
		"faq_no_match":        "🤷 Nothing in the FAQ matches. Would you like to open a ticket?",
		"ticket_ask_subject":  "✏️ Briefly, what is your ticket about?",
		"ticket_ask_message":  "📝 Describe the problem in detail:",
		"ticket_ask_attach":   "📎 You can send a screenshot now, or tap Done.",
		"ticket_created":      "🎫 Ticket {ticket_id} created!\nWe'll reply here as soon as an agent picks it up.",
		"ticket_not_found":    "❌ No ticket with that ID.",
		"ticket_reply":        "💬 Reply on ticket {ticket_id}:\n\n{body}",
		"ticket_list_empty":   "📭 You have no tickets yet.",
		"ticket_status_line":  "🎫 {ticket_id} [{status}] {subject}",
		"agent_menu":          "🎧 Agent Panel\n\nYour queue and availability:",
		"agent_online":        "🟢 You are now online and will receive new tickets.",
		"agent_offline":       "⚪ You are now offline.",
		"agent_queue_empty":   "📭 No tickets assigned to you.",
		"agent_stats":         "📊 Assigned: {assigned} | Resolved: {resolved}",
		"agent_reply_sent":    "✅ Reply sent on {ticket_id}.",
		"not_an_agent":        "❌ This area is for support agents.",
		"admin_menu":          "👑 Admin Panel\n\nBroadcasts, user management and live totals:",
		"broadcast_prompt":    "📣 Send the message to broadcast to all users:",
		"broadcast_done":      "✅ Broadcast delivered to {sent} users ({failed} failed).",
		"user_banned_admin":   "🚫 User {user_id} banned.",
		"user_unbanned_admin": "✅ User {user_id} unbanned.",
		"agent_added":         "✅ User {user_id} is now a support agent.",
		"not_authorized":      "❌ You are not authorized to do that.",
		"choose_quality":      "🎨 Choose a thumbnail quality, or All:",
		"bot_stats": "📈 Bot Stats\n\n" +
			"👥 Users: {users} ({premium} premium, {banned} banned)\n" +
			"📊 Requests today: {today}\n" +
			"🎫 Open tickets: {tickets}\n" +
			"💳 Pending payments: {payments}\n" +
			"🎧 Agents online: {online}/{agents}",

		"btn_help":        "❓ Help",
		"btn_stats":       "📊 My Stats",
		"btn_referral":    "🎁 Referral",
		"btn_premium":     "💎 Premium",
		"btn_buy_premium": "💳 Buy Premium",
		"btn_support":     "🎧 Support",
		"btn_main_menu":   "🏠 Main Menu",
		"btn_new_video":   "🆕 New Video",
		"btn_back":        "⬅️ Back",
		"btn_done":        "✅ Done",
		"btn_all":         "🖼 All",
		"btn_faq":         "🔎 FAQ",
		"btn_new_ticket":  "🎫 New Ticket",
		"btn_my_tickets":  "📋 My Tickets",
		"btn_go_online":   "🟢 Go Online",
		"btn_go_offline":  "⚪ Go Offline",
		"btn_my_queue":    "📋 My Queue",
		"btn_admin_panel": "👑 Admin Panel",
		"btn_bot_stats":   "📈 Bot Stats",
		"btn_broadcast":   "📣 Broadcast",
	},
	"es": {
		"welcome": "👋 ¡Bienvenido al Extractor de Miniaturas de YouTube!\n\n" +
			"Envíame cualquier enlace de YouTube o ID de video y te enviaré todas las miniaturas disponibles.\n\n" +
			"📝 Comandos:\n" +
			"/start - Iniciar el bot\n" +
			"/help - Mostrar ayuda\n" +
			"/stats - Tus estadísticas\n" +
			"/referral - Tu enlace de referido\n" +
			"/premium - Información premium\n" +
			"/language - Cambiar idioma",
		"welcome_referred": "👋 ¡Bienvenido! Fuiste referido por el usuario {referrer_id}.\n" +
			"¡Ambos reciben {bonus} solicitudes extra! 🎁\n\n" +
			"Envíame cualquier enlace de YouTube o ID de video para empezar.",
		"help": "🔍 Cómo usar:\n\n" +
			"1. Envíame un enlace de YouTube en cualquier formato:\n" +
			"   • youtube.com/watch?v=VIDEO_ID\n" +
			"   • youtu.be/VIDEO_ID\n" +
			"   • youtube.com/shorts/VIDEO_ID\n" +
			"   • O solo el ID del video\n\n" +
			"2. ¡Te enviaré todas las miniaturas disponibles!\n\n" +
			"💎 Funciones premium:\n" +
			"• Límites diarios más altos\n" +
			"• Procesamiento prioritario\n\n" +
			"¡Usa /premium para mejorar!",
		"stats": "📊 Tus Estadísticas:\n\n" +
			"Solicitudes diarias usadas: {used}/{limit}\n" +
			"Total de referidos: {referrals}\n" +
			"Estado premium: {premium}\n" +
			"Miembro desde: {joined}",
		"referral_info": "🎁 Programa de Referidos:\n\n" +
			"¡Comparte tu enlace y gana bonos!\n" +
			"¡Consigue {required} referidos para premium gratis! 💎\n\n" +
			"Tu enlace de referido:\n{link}\n\n" +
			"Total de referidos: {count}",
		"premium_info": "💎 Beneficios Premium:\n\n" +
			"✅ {premium_limit} solicitudes por día\n" +
			"✅ Procesamiento prioritario\n\n" +
			"🎁 ¡Consigue premium GRATIS refiriendo a {required} usuarios!\n" +
			"Usa /referral para obtener tu enlace.\n\n" +
			"Referidos actuales: {count}/{required}",
		"processing":      "⏳ Procesando tu solicitud...",
		"thumbnails_sent": "✅ ¡{count} miniatura(s) enviadas!\n\n¿Necesitas más? ¡Envía otro enlace!",
		"no_thumbnails":   "❌ No se pudieron enviar miniaturas.",
		"invalid_link":    "❌ Enlace de YouTube o ID de video inválido. Inténtalo de nuevo.",
		"limit_reached": "⚠️ Límite diario alcanzado ({limit} solicitudes).\n" +
			"¡Mejora a premium para {premium_limit} solicitudes por día!\n" +
			"O refiere amigos para conseguir solicitudes extra: /referral",
		"flood_warning":    "⚠️ ¡Más despacio! Espera {seconds} segundos antes de volver a intentarlo.",
		"error":            "❌ Ocurrió un error. Inténtalo más tarde.",
		"premium_granted":  "🎉 ¡Felicidades! ¡Has ganado el estado premium! 💎",
		"language_changed": "✅ Idioma cambiado a: {language}",
		"choose_language":  "🌍 Elige tu idioma:",
		"main_menu":        "🏠 Menú Principal\n\nElige una opción:",
		"send_video_link":  "📹 ¡Envíame un enlace de YouTube o un ID de video!",
		"user_banned":      "🚫 Has sido bloqueado de este bot.",
		"maintenance":      "🛠 El bot está en mantenimiento. Inténtalo más tarde.",
		"force_join":       "📢 Únete a {channel} para usar este bot y vuelve a intentarlo.",
		"cancelled":        "✅ Cancelado. De vuelta al menú principal.",

		"support_menu":       "🎧 Soporte\n\nBusca en las preguntas frecuentes o abre un ticket:",
		"faq_prompt":         "🔎 Escribe unas palabras describiendo tu problema:",
		"faq_no_match":       "🤷 Nada coincide en las preguntas frecuentes. ¿Quieres abrir un ticket?",
		"ticket_ask_subject": "✏️ En breve, ¿de qué trata tu ticket?",
		"ticket_ask_message": "📝 Describe el problema en detalle:",
		"ticket_ask_attach":  "📎 Puedes enviar una captura ahora, o pulsa Listo.",
		"ticket_created":     "🎫 ¡Ticket {ticket_id} creado!\nTe responderemos aquí en cuanto un agente lo tome.",
		"ticket_not_found":   "❌ No hay ningún ticket con ese ID.",
		"ticket_reply":       "💬 Respuesta en el ticket {ticket_id}:\n\n{body}",
		"ticket_list_empty":  "📭 Aún no tienes tickets.",
		"choose_quality":     "🎨 Elige una calidad de miniatura, o Todas:",

		"btn_help":       "❓ Ayuda",
		"btn_stats":      "📊 Mis Estadísticas",
		"btn_referral":   "🎁 Referidos",
		"btn_premium":    "💎 Premium",
		"btn_support":    "🎧 Soporte",
		"btn_main_menu":  "🏠 Menú Principal",
		"btn_new_video":  "🆕 Nuevo Video",
		"btn_back":       "⬅️ Atrás",
		"btn_done":       "✅ Listo",
		"btn_all":        "🖼 Todas",
		"btn_faq":        "🔎 FAQ",
		"btn_new_ticket": "🎫 Nuevo Ticket",
		"btn_my_tickets": "📋 Mis Tickets",
	},
}
