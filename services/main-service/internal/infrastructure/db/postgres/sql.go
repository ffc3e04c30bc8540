package postgres

const eventColumns = `
e.id, e.annotation, e.description, e.title, e.event_date,
c.id, c.name, u.id, u.name, e.lat, e.lon,
e.paid, e.participant_limit, e.request_moderation, e.state,
e.created_on, e.published_on, e.confirmed_requests, e.views,
(SELECT COUNT(*) FROM comments cm WHERE cm.event_id = e.id) AS comments`

const eventFrom = `
FROM events e
JOIN categories c ON c.id = e.category_id
JOIN users u ON u.id = e.initiator_id`

const selectEventsSQL = `SELECT` + eventColumns + eventFrom

const getEventSQL = selectEventsSQL + `
WHERE e.id = $1`

const listEventsByInitiatorSQL = selectEventsSQL + `
WHERE e.initiator_id = $1
ORDER BY e.id
LIMIT $2 OFFSET $3`

const insertEventSQL = `
INSERT INTO events (
  annotation, description, title, event_date, category_id, initiator_id,
  lat, lon, paid, participant_limit, request_moderation, state, created_on, published_on
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
RETURNING id`

// Counters are owned by the admission flow and the views sync and are never
// overwritten from a full-row update.
const updateEventSQL = `
UPDATE events SET
  annotation = $2,
  description = $3,
  title = $4,
  event_date = $5,
  category_id = $6,
  lat = $7,
  lon = $8,
  paid = $9,
  participant_limit = $10,
  request_moderation = $11,
  state = $12,
  published_on = $13
WHERE id = $1`

const setViewsSQL = `UPDATE events SET views = $2 WHERE id = $1`

const lockEventSQL = `SELECT id FROM events WHERE id = $1 FOR UPDATE`

const addConfirmedSQL = `
UPDATE events
SET confirmed_requests = confirmed_requests + $2
WHERE id = $1`

const requestColumns = `id, event_id, requester_id, created, status`

const getRequestSQL = `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

const getRequestForUpdateSQL = getRequestSQL + ` FOR UPDATE`

const findRequestForUpdateSQL = `
SELECT ` + requestColumns + ` FROM requests
WHERE event_id = $1 AND requester_id = $2
FOR UPDATE`

const getRequestsForUpdateSQL = `
SELECT ` + requestColumns + ` FROM requests
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE`

const listRequestsByRequesterSQL = `
SELECT ` + requestColumns + ` FROM requests
WHERE requester_id = $1
ORDER BY id`

const listRequestsByEventSQL = `
SELECT ` + requestColumns + ` FROM requests
WHERE event_id = $1
ORDER BY id`

const insertRequestSQL = `
INSERT INTO requests (event_id, requester_id, created, status)
VALUES ($1, $2, $3, $4)
RETURNING id`

const saveRequestSQL = `UPDATE requests SET status = $2, created = $3 WHERE id = $1`

const setRequestStatusSQL = `UPDATE requests SET status = $2 WHERE id = ANY($1)`

const insertUserSQL = `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`

const getUserSQL = `SELECT id, name, email FROM users WHERE id = $1`

const listUsersSQL = `
SELECT id, name, email FROM users
ORDER BY id
LIMIT $1 OFFSET $2`

const listUsersByIDSQL = `
SELECT id, name, email FROM users
WHERE id = ANY($1)
ORDER BY id
LIMIT $2 OFFSET $3`

const deleteUserSQL = `DELETE FROM users WHERE id = $1`

const insertCategorySQL = `INSERT INTO categories (name) VALUES ($1) RETURNING id`

const updateCategorySQL = `UPDATE categories SET name = $2 WHERE id = $1`

const deleteCategorySQL = `DELETE FROM categories WHERE id = $1`

const getCategorySQL = `SELECT id, name FROM categories WHERE id = $1`

const listCategoriesSQL = `
SELECT id, name FROM categories
ORDER BY id
LIMIT $1 OFFSET $2`

const commentColumns = `cm.id, cm.text, u.id, u.name, cm.event_id, cm.posted_on, cm.updated_on`

const getCommentSQL = `
SELECT ` + commentColumns + `
FROM comments cm
JOIN users u ON u.id = cm.author_id
WHERE cm.id = $1`

const listCommentsByEventSQL = `
SELECT ` + commentColumns + `
FROM comments cm
JOIN users u ON u.id = cm.author_id
WHERE cm.event_id = $1
ORDER BY cm.id
LIMIT $2 OFFSET $3`

const insertCommentSQL = `
INSERT INTO comments (text, author_id, event_id, posted_on)
VALUES ($1, $2, $3, $4)
RETURNING id`

const updateCommentSQL = `UPDATE comments SET text = $2, updated_on = $3 WHERE id = $1`

const deleteCommentSQL = `DELETE FROM comments WHERE id = $1`

const insertCompilationSQL = `INSERT INTO compilations (title, pinned) VALUES ($1, $2) RETURNING id`

const updateCompilationSQL = `UPDATE compilations SET title = $2, pinned = $3 WHERE id = $1`

const deleteCompilationSQL = `DELETE FROM compilations WHERE id = $1`

const getCompilationSQL = `SELECT id, title, pinned FROM compilations WHERE id = $1`

const listCompilationsSQL = `
SELECT id, title, pinned FROM compilations
WHERE ($1::boolean IS NULL OR pinned = $1)
ORDER BY id
LIMIT $2 OFFSET $3`

const linkCompilationEventsSQL = `
INSERT INTO compilation_events (compilation_id, event_id)
SELECT $1, unnest($2::bigint[])
ON CONFLICT DO NOTHING`

const unlinkCompilationEventsSQL = `DELETE FROM compilation_events WHERE compilation_id = $1`

const compilationEventsSQL = `SELECT ce.compilation_id,` + eventColumns + eventFrom + `
JOIN compilation_events ce ON ce.event_id = e.id
WHERE ce.compilation_id = ANY($1)
ORDER BY ce.compilation_id, e.id`
