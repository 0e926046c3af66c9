package http

import "net/http"

// handleIndex serves the minimal built-in chat page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>faqdesk</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 720px; margin: 0 auto; padding: 1rem; }
        #messages { min-height: 300px; border: 1px solid #ccc; border-radius: 8px; padding: 1rem; margin-bottom: 1rem; }
        .message { margin-bottom: .75rem; padding: .5rem .75rem; border-radius: 8px; }
        .message.user { background: #e8f0fe; text-align: right; }
        .message.assistant { background: #f1f3f4; }
        #quick button { margin: 0 .25rem .5rem 0; }
        form { display: flex; gap: .5rem; }
        input { flex: 1; padding: .5rem; }
    </style>
</head>
<body>
    <h1>faqdesk</h1>
    <div id="quick"></div>
    <div id="messages"></div>
    <form id="chat-form">
        <input type="text" id="chat-input" placeholder="Type your message..." autocomplete="off" required>
        <button type="submit">Send</button>
    </form>
    <script>
        let sessionId = null;
        const messages = document.getElementById('messages');

        function add(role, text) {
            const div = document.createElement('div');
            div.className = 'message ' + role;
            div.textContent = text;
            messages.appendChild(div);
            messages.scrollTop = messages.scrollHeight;
        }

        async function init() {
            const res = await fetch('/api/sessions', {method: 'POST'});
            const data = await res.json();
            sessionId = data.session_id;
            if (data.greeting) add('assistant', data.greeting);

            const qres = await fetch('/api/quick-questions');
            const qdata = await qres.json();
            const quick = document.getElementById('quick');
            (qdata.questions || []).forEach(q => {
                const btn = document.createElement('button');
                btn.textContent = q;
                btn.onclick = async () => {
                    add('user', q);
                    const r = await fetch('/api/quick-answer', {
                        method: 'POST',
                        headers: {'Content-Type': 'application/json'},
                        body: JSON.stringify({question: q})
                    });
                    const d = await r.json();
                    add('assistant', d.found ? d.answer : d.notice);
                };
                quick.appendChild(btn);
            });
        }

        document.getElementById('chat-form').onsubmit = async (e) => {
            e.preventDefault();
            const input = document.getElementById('chat-input');
            const text = input.value.trim();
            if (!text || !sessionId) return;
            input.value = '';
            add('user', text);
            const res = await fetch('/api/chat', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({session_id: sessionId, message: text})
            });
            const data = await res.json();
            add('assistant', data.reply || data.error);
        };

        init();
    </script>
</body>
</html>`
