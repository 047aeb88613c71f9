package pgstore

const qLockIdentity = `SELECT pg_advisory_xact_lock($1)`

const (
	qIdentityByEmail = `SELECT id, email, password, created_at FROM users WHERE email = $1`
	qIdentityByID    = `SELECT id, email, password, created_at FROM users WHERE id = $1`
	qNicknameTaken   = `SELECT EXISTS (SELECT 1 FROM data_users WHERE nickname = $1)`
	qPhoneTaken      = `SELECT EXISTS (SELECT 1 FROM data_users WHERE phone_num = $1)`
	qCreateIdentity  = `INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id, created_at`

	qBindProvider = `INSERT INTO auth_types (users_id, type) VALUES ($1, $2)
ON CONFLICT (users_id) DO UPDATE SET type = EXCLUDED.type`
	qProvider = `SELECT type FROM auth_types WHERE users_id = $1`

	qCreateProfile = `INSERT INTO data_users
(users_id, name, surname, nickname, phone_num, location, date_birthday, ref_image, date_register)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	qAssignRole   = `INSERT INTO users_roles (users_id, name_role) VALUES ($1, $2)`
	qCreatePlayer = `INSERT INTO data_players (users_id) VALUES ($1)`
	qCreateCoords = `INSERT INTO coord_players (users_id) VALUES ($1)`
)

const (
	qCreateModules = `INSERT INTO users_modules
(users_id, player, judge, creator, moderator, manager, admin, super_admin)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	qCreateAttributes = `INSERT INTO users_attributes (users_id, read, write, "update", "delete")
VALUES ($1, $2, $3, $4, $5)`
	qModules = `SELECT player, judge, creator, moderator, manager, admin, super_admin
FROM users_modules WHERE users_id = $1`
	qAttributes      = `SELECT read, write, "update", "delete" FROM users_attributes WHERE users_id = $1`
	qGroupOf         = `SELECT users_groups_id FROM users_roles WHERE users_id = $1 AND users_groups_id IS NOT NULL`
	qGroupModules    = `SELECT player, judge, creator, moderator, manager, admin, super_admin
FROM groups_modules WHERE users_groups_id = $1`
	qGroupAttributes = `SELECT read, write, "update", "delete" FROM groups_attributes WHERE users_groups_id = $1`
)

const (
	qUpsertSession = `INSERT INTO tokens (users_id, access_token, refresh_token) VALUES ($1, $2, $3)
ON CONFLICT (users_id) DO UPDATE SET access_token = EXCLUDED.access_token, refresh_token = EXCLUDED.refresh_token`
	qSessionByIdentity     = `SELECT users_id, access_token, refresh_token FROM tokens WHERE users_id = $1`
	qSessionByRefreshToken = `SELECT users_id, access_token, refresh_token FROM tokens WHERE refresh_token = $1`
	qDeleteSession         = `DELETE FROM tokens WHERE users_id = $1`
)

const (
	qCreateActivation = `INSERT INTO activations (users_id, activation_link, is_activated) VALUES ($1, $2, $3)`
	qActivationByLink = `SELECT users_id, activation_link, is_activated FROM activations WHERE activation_link = $1`
	qMarkActivated    = `UPDATE activations SET is_activated = true WHERE activation_link = $1`
)
